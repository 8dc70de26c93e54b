// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Notification kinds routed to the webhook sender
const (
	NotifyCreate   = "create"
	NotifyFinalize = "finalize"
	NotifyUpdate   = "update"
	NotifyRemind   = "remind"
)

// Event configuration defaults (matching the grid UI defaults)
const (
	DefaultSlotInterval     = 30
	DefaultDisplayStartTime = "09:00"
	DefaultDisplayEndTime   = "23:00"
	DefaultTimezone         = "UTC"
	DefaultReminderHours    = 24
)

// Request types

type CreateEventRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Dates            []string   `json:"dates"` // "YYYY-MM-DD"
	SlotInterval     int        `json:"slot_interval"`
	DisplayStartTime string     `json:"display_start_time"` // "HH:MM"
	DisplayEndTime   string     `json:"display_end_time"`   // "HH:MM"
	Timezone         string     `json:"timezone"`           // IANA zone name
	WebhookURL       string     `json:"webhook_url"`
	DeadlineAt       *time.Time `json:"deadline_at,omitempty"`
}

// UpdateSettingsRequest uses pointer fields so absent keys leave the
// stored value untouched.
type UpdateSettingsRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	WebhookURL        *string    `json:"webhook_url,omitempty"`
	IsNotifyConfirmed *bool      `json:"is_notify_confirmed,omitempty"`
	IsNotifyUpdated   *bool      `json:"is_notify_updated,omitempty"`
	ReminderHours     *int       `json:"reminder_hours,omitempty"`
	DeadlineAt        *time.Time `json:"deadline_at,omitempty"`
}

type CheckInRequest struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
}

type SaveAvailabilityRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

type FinalizeRequest struct {
	StartSlotID string `json:"start_slot_id"`
	EndSlotID   string `json:"end_slot_id"`
}

// Response types

type CreateEventResponse struct {
	EventID    string `json:"event_id"`
	AdminToken string `json:"admin_token"`
	ShareURL   string `json:"share_url"`
	SlotCount  int    `json:"slot_count"`
}

type CheckInResponse struct {
	ResponseID  string `json:"response_id"`
	Fingerprint string `json:"fingerprint"`
	IsAdmin     bool   `json:"is_admin"`
	Existing    bool   `json:"existing"`
}

type SaveAvailabilityResponse struct {
	SavedCount int    `json:"saved_count"`
	Message    string `json:"message"`
}

type AvailabilityResponse struct {
	SlotIDs []string `json:"slot_ids"`
}

type FinalizeResponse struct {
	ConfirmedStartAt time.Time `json:"confirmed_start_at"`
	ConfirmedEndAt   time.Time `json:"confirmed_end_at"`
	Kind             string    `json:"kind"` // "finalize" or "update"
}

type UpdateSettingsResponse struct {
	Message string `json:"message"`
}

// Domain types

type Event struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	SlotInterval      int        `json:"slot_interval"`
	DisplayStartTime  string     `json:"display_start_time"`
	DisplayEndTime    string     `json:"display_end_time"`
	Timezone          string     `json:"timezone"`
	AdminToken        string     `json:"-"` // Never expose in JSON
	WebhookURL        *string    `json:"-"` // Never expose in JSON
	IsNotifyConfirmed bool       `json:"is_notify_confirmed"`
	IsNotifyUpdated   bool       `json:"is_notify_updated"`
	ReminderHours     int        `json:"reminder_hours"`
	DeadlineAt        *time.Time `json:"deadline_at,omitempty"`
	ConfirmedStartAt  *time.Time `json:"confirmed_start_at,omitempty"`
	ConfirmedEndAt    *time.Time `json:"confirmed_end_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type TimeSlot struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	StartAt time.Time `json:"start_at"`
}

type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type EventDetailResponse struct {
	Event   Event      `json:"event"`
	Slots   []TimeSlot `json:"slots"`
	IsAdmin bool       `json:"is_admin"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// Heatmap types

type HeatmapSlot struct {
	SlotID      string   `json:"slot_id"`
	Count       int      `json:"count"`
	FillRatio   float64  `json:"fill_ratio"`
	ResponseIDs []string `json:"response_ids"`
}

type HeatmapResponse struct {
	TotalParticipants int           `json:"total_participants"`
	Slots             []HeatmapSlot `json:"slots"`
}

// Grid and range types

type GridCell struct {
	Date   string `json:"date"` // "YYYY-MM-DD" in the event timezone
	Time   string `json:"time"` // "HH:MM" in the event timezone
	SlotID string `json:"slot_id"`
}

type GridResponse struct {
	Dates []string   `json:"dates"`
	Times []string   `json:"times"`
	Cells []GridCell `json:"cells"`
}

type RangeParticipant struct {
	ResponseID string `json:"response_id"`
	Name       string `json:"name"`
}

type RangeResponse struct {
	SlotIDs           []string           `json:"slot_ids"`
	StartSlotID       string             `json:"start_slot_id"`
	EndSlotID         string             `json:"end_slot_id"`
	MinCount          int                `json:"min_count"`
	PerfectMatchCount int                `json:"perfect_match_count"`
	PerfectMatch      []RangeParticipant `json:"perfect_match"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
