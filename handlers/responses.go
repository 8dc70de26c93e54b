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
	"github.com/meetgrid/meetgrid/realtime"
)

type ResponseHandler struct {
	db  *sql.DB
	hub *realtime.Hub
}

func NewResponseHandler(db *sql.DB, hub *realtime.Hub) *ResponseHandler {
	return &ResponseHandler{db: db, hub: hub}
}

// CheckIn handles POST /events/{id}/responses
// Registers a participant by name. A returning browser sends its stored
// fingerprint and gets its existing response back instead of a duplicate.
func (h *ResponseHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.CheckInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Name) > 80 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is too long")
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

	isAdmin := auth.ValidateAdminToken(adminToken(r), ev.AdminToken) == nil

	// Returning participant: look the fingerprint up first.
	if req.Fingerprint != "" {
		var responseID string
		err := h.db.QueryRow(`
			SELECT id FROM responses
			WHERE event_id = $1 AND user_fingerprint = $2
		`, eventID, req.Fingerprint).Scan(&responseID)

		if err == nil {
			// Refresh the display name on return visits.
			_, err = h.db.Exec(`
				UPDATE responses SET user_name = $1, is_admin = $2 WHERE id = $3
			`, req.Name, isAdmin, responseID)
			if err != nil {
				slog.Error("failed to update response", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}

			middleware.JSONResponse(w, http.StatusOK, models.CheckInResponse{
				ResponseID:  responseID,
				Fingerprint: req.Fingerprint,
				IsAdmin:     isAdmin,
				Existing:    true,
			})
			return
		}
		if err != sql.ErrNoRows {
			slog.Error("failed to query response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	fingerprint := req.Fingerprint
	if fingerprint == "" {
		fingerprint, err = auth.GenerateFingerprint()
		if err != nil {
			slog.Error("failed to generate fingerprint", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check in")
			return
		}
	}

	responseID := auth.NewRowID()
	_, err = h.db.Exec(`
		INSERT INTO responses (id, event_id, user_name, user_fingerprint, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, responseID, eventID, req.Name, fingerprint, isAdmin, time.Now())

	if err != nil {
		// Concurrent check-in with the same fingerprint; hand back the
		// row the other request won with.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			var existingID string
			lookupErr := h.db.QueryRow(`
				SELECT id FROM responses
				WHERE event_id = $1 AND user_fingerprint = $2
			`, eventID, fingerprint).Scan(&existingID)
			if lookupErr == nil {
				middleware.JSONResponse(w, http.StatusOK, models.CheckInResponse{
					ResponseID:  existingID,
					Fingerprint: fingerprint,
					IsAdmin:     isAdmin,
					Existing:    true,
				})
				return
			}
		}
		slog.Error("failed to insert response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check in")
		return
	}

	slog.Info("participant checked in", "event_id", eventID, "response_id", responseID)
	h.hub.Notify(eventID)

	middleware.JSONResponse(w, http.StatusCreated, models.CheckInResponse{
		ResponseID:  responseID,
		Fingerprint: fingerprint,
		IsAdmin:     isAdmin,
		Existing:    false,
	})
}

// ListParticipants handles GET /events/{id}/responses
func (h *ResponseHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT id, user_name, is_admin, created_at
		FROM responses
		WHERE event_id = $1
		ORDER BY created_at
	`, eventID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.IsAdmin, &p.CreatedAt); err != nil {
			slog.Error("failed to scan response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantsResponse{Participants: participants})
}
