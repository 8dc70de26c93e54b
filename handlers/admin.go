// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/meetgrid/meetgrid/auth"
	"github.com/meetgrid/meetgrid/middleware"
	"github.com/meetgrid/meetgrid/models"
	"github.com/meetgrid/meetgrid/notify"
	"github.com/meetgrid/meetgrid/realtime"
	"github.com/meetgrid/meetgrid/schedule"
)

type AdminHandler struct {
	db       *sql.DB
	hub      *realtime.Hub
	notifier notify.Sender
	avail    *AvailabilityHandler
}

func NewAdminHandler(db *sql.DB, hub *realtime.Hub, notifier notify.Sender) *AdminHandler {
	return &AdminHandler{
		db:       db,
		hub:      hub,
		notifier: notifier,
		avail:    &AvailabilityHandler{db: db, hub: hub},
	}
}

// GetRange handles GET /events/{id}/range?start=...&end=...
// Resolves the rectangle between two anchor slots and reports how well
// the covered range matches participant availability. Admin only.
func (h *AdminHandler) GetRange(w http.ResponseWriter, r *http.Request) {
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

	anchorID := r.URL.Query().Get("start")
	currentID := r.URL.Query().Get("end")
	if anchorID == "" || currentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start and end slot ids are required")
		return
	}

	ev, err := fetchEvent(h.db, eventID)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	grid, status, errMsg := buildGrid(h.db, ev)
	if errMsg != "" {
		middleware.ErrorResponse(w, status, errMsg)
		return
	}

	heatmap, _, status, errMsg := h.avail.buildHeatmap(eventID)
	if errMsg != "" {
		middleware.ErrorResponse(w, status, errMsg)
		return
	}

	sel, err := schedule.SelectRange(grid, heatmap, anchorID, currentID)
	if errors.Is(err, schedule.ErrUnknownSlot) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown slot id")
		return
	}
	if err != nil {
		slog.Error("failed to resolve range", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve range")
		return
	}

	matches, err := h.resolveParticipants(sel.PerfectMatch)
	if err != nil {
		slog.Error("failed to resolve participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RangeResponse{
		SlotIDs:           sel.SlotIDs,
		StartSlotID:       sel.StartSlotID,
		EndSlotID:         sel.EndSlotID,
		MinCount:          sel.MinCount,
		PerfectMatchCount: len(sel.PerfectMatch),
		PerfectMatch:      matches,
	})
}

// Finalize handles POST /events/{id}/finalize
// Confirms the event's time from a start and end slot. The confirmed end
// is the end slot's start plus the slot interval, so a single-slot range
// still spans one interval. A second finalization is classified as an
// update. Admin only.
func (h *AdminHandler) Finalize(w http.ResponseWriter, r *http.Request) {
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

	var req models.FinalizeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.StartSlotID == "" || req.EndSlotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_slot_id and end_slot_id are required")
		return
	}

	ev, err := fetchEvent(h.db, eventID)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var startAt, endSlotStart time.Time
	found := 0
	rows, err := h.db.Query(`
		SELECT id, start_at FROM time_slots
		WHERE event_id = $1 AND id = ANY($2)
	`, eventID, pq.Array([]string{req.StartSlotID, req.EndSlotID}))
	if err != nil {
		slog.Error("failed to query time slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			rows.Close()
			slog.Error("failed to scan time slot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if id == req.StartSlotID {
			startAt = at
			found++
		}
		if id == req.EndSlotID {
			endSlotStart = at
			found++
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		slog.Error("failed to read time slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if found < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown slot id")
		return
	}

	// Tolerate reversed boundaries.
	if endSlotStart.Before(startAt) {
		startAt, endSlotStart = endSlotStart, startAt
	}

	// The range covers the end slot itself, so the confirmed window
	// extends one interval past its start.
	endAt := endSlotStart.Add(time.Duration(ev.SlotInterval) * time.Minute)

	kind := models.NotifyFinalize
	if ev.ConfirmedStartAt != nil {
		kind = models.NotifyUpdate
	}

	_, err = h.db.Exec(`
		UPDATE events SET confirmed_start_at = $1, confirmed_end_at = $2 WHERE id = $3
	`, startAt, endAt, eventID)
	if err != nil {
		slog.Error("failed to finalize event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize event")
		return
	}

	slog.Info("event finalized", "event_id", eventID, "kind", kind,
		"start", startAt, "end", endAt)
	h.hub.Notify(eventID)

	shouldNotify := (kind == models.NotifyFinalize && ev.IsNotifyConfirmed) ||
		(kind == models.NotifyUpdate && ev.IsNotifyUpdated)
	if shouldNotify && ev.WebhookURL != nil && *ev.WebhookURL != "" {
		url := *ev.WebhookURL
		summary := notify.EventSummary{
			ID:               ev.ID,
			Title:            ev.Title,
			Description:      ev.Description,
			ConfirmedStartAt: &startAt,
			ConfirmedEndAt:   &endAt,
		}
		go func() {
			if err := h.notifier.Send(url, kind, summary); err != nil {
				slog.Warn("notification failed", "event_id", eventID, "kind", kind, "error", err)
			}
		}()
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalizeResponse{
		ConfirmedStartAt: startAt,
		ConfirmedEndAt:   endAt,
		Kind:             kind,
	})
}

// resolveParticipants maps response ids to display names, preserving the
// given order.
func (h *AdminHandler) resolveParticipants(responseIDs []string) ([]models.RangeParticipant, error) {
	out := make([]models.RangeParticipant, 0, len(responseIDs))
	if len(responseIDs) == 0 {
		return out, nil
	}

	rows, err := h.db.Query(`
		SELECT id, user_name FROM responses WHERE id = ANY($1)
	`, pq.Array(responseIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string, len(responseIDs))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range responseIDs {
		out = append(out, models.RangeParticipant{ResponseID: id, Name: names[id]})
	}
	return out, nil
}
