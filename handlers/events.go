// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/meetgrid/meetgrid/auth"
	"github.com/meetgrid/meetgrid/cliparse"
	"github.com/meetgrid/meetgrid/middleware"
	"github.com/meetgrid/meetgrid/models"
	"github.com/meetgrid/meetgrid/notify"
	"github.com/meetgrid/meetgrid/schedule"
)

type EventHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Sender
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config, notifier notify.Sender) *EventHandler {
	return &EventHandler{db: db, cfg: cfg, notifier: notifier}
}

// CreateEvent handles POST /events
// Creates the event and its full slot set in one transaction, so a slot
// failure never leaves an orphaned event row behind.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Dates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one date is required")
		return
	}

	// Apply configuration defaults
	if req.SlotInterval == 0 {
		req.SlotInterval = models.DefaultSlotInterval
	}
	if req.DisplayStartTime == "" {
		req.DisplayStartTime = models.DefaultDisplayStartTime
	}
	if req.DisplayEndTime == "" {
		req.DisplayEndTime = models.DefaultDisplayEndTime
	}
	if req.Timezone == "" {
		req.Timezone = models.DefaultTimezone
	}

	// Expand the configuration before touching the database; malformed
	// times, a bad interval, or an unknown timezone fail the whole
	// operation here.
	starts, err := schedule.GenerateSlots(schedule.SlotConfig{
		Dates:            req.Dates,
		DisplayStartTime: req.DisplayStartTime,
		DisplayEndTime:   req.DisplayEndTime,
		IntervalMinutes:  req.SlotInterval,
		Timezone:         req.Timezone,
	})
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	eventID, err := auth.NewEventID()
	if err != nil {
		slog.Error("failed to generate event ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	token, err := auth.GenerateAdminToken()
	if err != nil {
		slog.Error("failed to generate admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	var webhookURL *string
	if req.WebhookURL != "" {
		webhookURL = &req.WebhookURL
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO events (id, title, description, slot_interval, display_start_time,
		                    display_end_time, timezone, admin_token, webhook_url,
		                    reminder_hours, deadline_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, eventID, req.Title, req.Description, req.SlotInterval, req.DisplayStartTime,
		req.DisplayEndTime, req.Timezone, token, webhookURL,
		models.DefaultReminderHours, req.DeadlineAt, time.Now())

	if err != nil {
		slog.Error("failed to insert event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	for _, startAt := range starts {
		_, err = tx.Exec(`
			INSERT INTO time_slots (id, event_id, start_at)
			VALUES ($1, $2, $3)
		`, auth.NewRowID(), eventID, startAt.UTC())

		if err != nil {
			slog.Error("failed to insert time slot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create time slots")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit event creation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", eventID, "slots", len(starts))

	if req.WebhookURL != "" {
		h.sendAsync(req.WebhookURL, models.NotifyCreate, notify.EventSummary{
			ID:          eventID,
			Title:       req.Title,
			Description: req.Description,
		})
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID:    eventID,
		AdminToken: token,
		ShareURL:   h.cfg.BaseURL + "/events/" + eventID,
		SlotCount:  len(starts),
	})
}

// GetEvent handles GET /events/{id}
// Returns the event, its slot set, and whether the caller's token grants
// admin access.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	ev, err := fetchEvent(h.db, eventID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slots, err := fetchSlots(h.db, eventID)
	if err != nil {
		slog.Error("failed to query time slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventDetailResponse{
		Event:   ev,
		Slots:   slots,
		IsAdmin: auth.ValidateAdminToken(adminToken(r), ev.AdminToken) == nil,
	})
}

// UpdateSettings handles PATCH /events/{id}/settings
// Admin-only partial update of title, description, and notification
// settings.
func (h *EventHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	if err := authorizeAdmin(h.db, eventID, adminToken(r)); err != nil {
		if errors.Is(err, auth.ErrInvalidAdminToken) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			slog.Error("failed to authorize admin", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var req models.UpdateSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title != nil && *req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.ReminderHours != nil && *req.ReminderHours <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reminder_hours must be positive")
		return
	}

	ev, err := fetchEvent(h.db, eventID)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Apply the patch over current values
	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.WebhookURL != nil {
		if *req.WebhookURL == "" {
			ev.WebhookURL = nil
		} else {
			ev.WebhookURL = req.WebhookURL
		}
	}
	if req.IsNotifyConfirmed != nil {
		ev.IsNotifyConfirmed = *req.IsNotifyConfirmed
	}
	if req.IsNotifyUpdated != nil {
		ev.IsNotifyUpdated = *req.IsNotifyUpdated
	}
	if req.ReminderHours != nil {
		ev.ReminderHours = *req.ReminderHours
	}
	if req.DeadlineAt != nil {
		ev.DeadlineAt = req.DeadlineAt
	}

	_, err = h.db.Exec(`
		UPDATE events
		SET title = $1, description = $2, webhook_url = $3,
		    is_notify_confirmed = $4, is_notify_updated = $5,
		    reminder_hours = $6, deadline_at = $7
		WHERE id = $8
	`, ev.Title, ev.Description, ev.WebhookURL, ev.IsNotifyConfirmed,
		ev.IsNotifyUpdated, ev.ReminderHours, ev.DeadlineAt, eventID)

	if err != nil {
		slog.Error("failed to update event settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	slog.Info("event settings updated", "event_id", eventID)

	middleware.JSONResponse(w, http.StatusOK, models.UpdateSettingsResponse{
		Message: "Settings saved",
	})
}

// TestWebhook handles POST /events/{id}/webhook-test
// Sends a test notification so the admin can verify the webhook URL
// before relying on it.
func (h *EventHandler) TestWebhook(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	if err := authorizeAdmin(h.db, eventID, adminToken(r)); err != nil {
		if errors.Is(err, auth.ErrInvalidAdminToken) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			slog.Error("failed to authorize admin", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// An explicit URL in the body lets the admin test before saving.
	var req struct {
		WebhookURL string `json:"webhook_url"`
	}
	_ = middleware.ParseJSONBody(r, &req)

	ev, err := fetchEvent(h.db, eventID)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	url := req.WebhookURL
	if url == "" && ev.WebhookURL != nil {
		url = *ev.WebhookURL
	}
	if url == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no webhook URL configured")
		return
	}

	// Synchronous on purpose: the admin wants the delivery verdict.
	err = h.notifier.Send(url, models.NotifyCreate, notify.EventSummary{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: "Webhook test message",
	})
	if err != nil {
		slog.Warn("webhook test failed", "event_id", eventID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Webhook delivery failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Test notification sent"})
}

func (h *EventHandler) sendAsync(webhookURL, kind string, ev notify.EventSummary) {
	go func() {
		if err := h.notifier.Send(webhookURL, kind, ev); err != nil {
			slog.Warn("notification failed", "event_id", ev.ID, "kind", kind, "error", err)
		}
	}()
}

// fetchEvent loads one event row.
func fetchEvent(db *sql.DB, eventID string) (models.Event, error) {
	var ev models.Event
	err := db.QueryRow(`
		SELECT id, title, description, slot_interval, display_start_time,
		       display_end_time, timezone, admin_token, webhook_url,
		       is_notify_confirmed, is_notify_updated, reminder_hours,
		       deadline_at, confirmed_start_at, confirmed_end_at, created_at
		FROM events
		WHERE id = $1
	`, eventID).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.SlotInterval, &ev.DisplayStartTime,
		&ev.DisplayEndTime, &ev.Timezone, &ev.AdminToken, &ev.WebhookURL,
		&ev.IsNotifyConfirmed, &ev.IsNotifyUpdated, &ev.ReminderHours,
		&ev.DeadlineAt, &ev.ConfirmedStartAt, &ev.ConfirmedEndAt, &ev.CreatedAt,
	)
	return ev, err
}

// fetchSlots loads an event's slot set ordered by start instant.
func fetchSlots(db *sql.DB, eventID string) ([]models.TimeSlot, error) {
	rows, err := db.Query(`
		SELECT id, event_id, start_at
		FROM time_slots
		WHERE event_id = $1
		ORDER BY start_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []models.TimeSlot{}
	for rows.Next() {
		var s models.TimeSlot
		if err := rows.Scan(&s.ID, &s.EventID, &s.StartAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
