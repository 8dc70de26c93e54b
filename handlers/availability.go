// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/meetgrid/meetgrid/middleware"
	"github.com/meetgrid/meetgrid/models"
	"github.com/meetgrid/meetgrid/realtime"
	"github.com/meetgrid/meetgrid/schedule"
)

type AvailabilityHandler struct {
	db  *sql.DB
	hub *realtime.Hub
}

func NewAvailabilityHandler(db *sql.DB, hub *realtime.Hub) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, hub: hub}
}

// SaveAvailability handles PUT /events/{id}/responses/{rid}/availability
// Replaces the response's slot set wholesale. Sending the same set twice
// is a no-op; sending an empty set clears the response's availability.
func (h *AvailabilityHandler) SaveAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	responseID := r.PathValue("rid")
	if eventID == "" || responseID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id and response id are required")
		return
	}

	var req models.SaveAvailabilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The response must belong to this event.
	var owner string
	err := h.db.QueryRow(`SELECT event_id FROM responses WHERE id = $1`, responseID).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != eventID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Every referenced slot must belong to this event too.
	if len(req.SlotIDs) > 0 {
		var valid int
		err = h.db.QueryRow(`
			SELECT COUNT(*) FROM time_slots
			WHERE event_id = $1 AND id = ANY($2)
		`, eventID, pq.Array(dedupe(req.SlotIDs))).Scan(&valid)
		if err != nil {
			slog.Error("failed to validate slot ids", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if valid != len(dedupe(req.SlotIDs)) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown slot id")
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Replace-set: the stored rows mirror the submitted set exactly.
	_, err = tx.Exec(`DELETE FROM availability WHERE response_id = $1`, responseID)
	if err != nil {
		slog.Error("failed to clear availability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save availability")
		return
	}

	saved := 0
	for _, slotID := range dedupe(req.SlotIDs) {
		_, err = tx.Exec(`
			INSERT INTO availability (response_id, time_slot_id)
			VALUES ($1, $2)
		`, responseID, slotID)
		if err != nil {
			slog.Error("failed to insert availability", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save availability")
			return
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit availability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save availability")
		return
	}

	slog.Info("availability saved", "event_id", eventID, "response_id", responseID, "slots", saved)
	h.hub.Notify(eventID)

	middleware.JSONResponse(w, http.StatusOK, models.SaveAvailabilityResponse{
		SavedCount: saved,
		Message:    "Availability saved",
	})
}

// GetAvailability handles GET /events/{id}/responses/{rid}/availability
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	responseID := r.PathValue("rid")
	if eventID == "" || responseID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id and response id are required")
		return
	}

	var owner string
	err := h.db.QueryRow(`SELECT event_id FROM responses WHERE id = $1`, responseID).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != eventID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT a.time_slot_id
		FROM availability a
		JOIN time_slots ts ON ts.id = a.time_slot_id
		WHERE a.response_id = $1
		ORDER BY ts.start_at
	`, responseID)
	if err != nil {
		slog.Error("failed to query availability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	slotIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan availability", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slotIDs = append(slotIDs, id)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read availability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AvailabilityResponse{SlotIDs: slotIDs})
}

// GetHeatmap handles GET /events/{id}/heatmap
// Returns per-slot availability counts and fill ratios computed from a
// fresh read of the availability relation.
func (h *AvailabilityHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	heatmap, _, status, errMsg := h.buildHeatmap(eventID)
	if errMsg != "" {
		middleware.ErrorResponse(w, status, errMsg)
		return
	}

	slots := []models.HeatmapSlot{}
	for _, slotID := range heatmap.SlotIDs() {
		slots = append(slots, models.HeatmapSlot{
			SlotID:      slotID,
			Count:       heatmap.Count(slotID),
			FillRatio:   heatmap.FillRatio(slotID),
			ResponseIDs: heatmap.Participants(slotID),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.HeatmapResponse{
		TotalParticipants: heatmap.TotalParticipants(),
		Slots:             slots,
	})
}

// GetGrid handles GET /events/{id}/grid
// Returns the date × time arrangement of the event's slots in the
// event's timezone, for clients that render the selection grid.
func (h *AvailabilityHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
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

	grid, status, errMsg := buildGrid(h.db, ev)
	if errMsg != "" {
		middleware.ErrorResponse(w, status, errMsg)
		return
	}

	resp := models.GridResponse{Dates: grid.Dates, Times: grid.Times, Cells: []models.GridCell{}}
	for _, d := range grid.Dates {
		for _, t := range grid.Times {
			if s, ok := grid.At(d, t); ok {
				resp.Cells = append(resp.Cells, models.GridCell{Date: d, Time: t, SlotID: s.ID})
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Live handles GET /events/{id}/live
// Server-sent event stream that emits a "changed" event whenever the
// event's responses or availability change, plus periodic keepalives.
func (h *AvailabilityHandler) Live(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates, cancel := h.hub.Subscribe(eventID)
	defer cancel()

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			fmt.Fprint(w, "event: changed\ndata: {}\n\n")
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

// buildHeatmap reads the availability relation and responder count for an
// event and reduces them. The returned status and message are set only on
// failure.
func (h *AvailabilityHandler) buildHeatmap(eventID string) (*schedule.Heatmap, int, int, string) {
	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query event", "error", err)
		return nil, 0, http.StatusInternalServerError, "Database error"
	}
	if !exists {
		return nil, 0, http.StatusNotFound, "Event not found"
	}

	var total int
	err = h.db.QueryRow(`SELECT COUNT(*) FROM responses WHERE event_id = $1`, eventID).Scan(&total)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		return nil, 0, http.StatusInternalServerError, "Database error"
	}

	rows, err := h.db.Query(`
		SELECT a.response_id, a.time_slot_id
		FROM availability a
		JOIN responses r ON r.id = a.response_id
		WHERE r.event_id = $1
	`, eventID)
	if err != nil {
		slog.Error("failed to query availability", "error", err)
		return nil, 0, http.StatusInternalServerError, "Database error"
	}
	defer rows.Close()

	pairs := []schedule.AvailabilityPair{}
	for rows.Next() {
		var p schedule.AvailabilityPair
		if err := rows.Scan(&p.ResponseID, &p.SlotID); err != nil {
			slog.Error("failed to scan availability", "error", err)
			return nil, 0, http.StatusInternalServerError, "Database error"
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read availability", "error", err)
		return nil, 0, http.StatusInternalServerError, "Database error"
	}

	return schedule.BuildHeatmap(pairs, total), total, 0, ""
}

// buildGrid loads an event's slots and indexes them in the event's
// timezone. The returned status and message are set only on failure.
func buildGrid(db *sql.DB, ev models.Event) (*schedule.Grid, int, string) {
	loc, err := time.LoadLocation(ev.Timezone)
	if err != nil {
		slog.Error("stored timezone failed to load", "event_id", ev.ID, "timezone", ev.Timezone)
		return nil, http.StatusInternalServerError, "Invalid event timezone"
	}

	slots, err := fetchSlots(db, ev.ID)
	if err != nil {
		slog.Error("failed to query time slots", "error", err)
		return nil, http.StatusInternalServerError, "Database error"
	}

	gridSlots := make([]schedule.Slot, len(slots))
	for i, s := range slots {
		gridSlots[i] = schedule.Slot{ID: s.ID, StartAt: s.StartAt}
	}
	return schedule.BuildGrid(gridSlots, loc), 0, ""
}

// dedupe removes duplicate ids while preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
