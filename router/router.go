// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/meetgrid/meetgrid/cliparse"
	"github.com/meetgrid/meetgrid/handlers"
	"github.com/meetgrid/meetgrid/middleware"
	"github.com/meetgrid/meetgrid/notify"
	"github.com/meetgrid/meetgrid/realtime"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *realtime.Hub, notifier notify.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg, notifier)
	responseHandler := handlers.NewResponseHandler(db, hub)
	availabilityHandler := handlers.NewAvailabilityHandler(db, hub)
	adminHandler := handlers.NewAdminHandler(db, hub, notifier)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event management
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("PATCH /events/{id}/settings", middleware.WithLogging(eventHandler.UpdateSettings))
	mux.HandleFunc("POST /events/{id}/webhook-test", middleware.WithLogging(eventHandler.TestWebhook))

	// Participants (public)
	mux.HandleFunc("POST /events/{id}/responses", middleware.WithLogging(responseHandler.CheckIn))
	mux.HandleFunc("GET /events/{id}/responses", middleware.WithLogging(responseHandler.ListParticipants))

	// Availability and aggregation (public)
	mux.HandleFunc("PUT /events/{id}/responses/{rid}/availability", middleware.WithLogging(availabilityHandler.SaveAvailability))
	mux.HandleFunc("GET /events/{id}/responses/{rid}/availability", middleware.WithLogging(availabilityHandler.GetAvailability))
	mux.HandleFunc("GET /events/{id}/heatmap", middleware.WithLogging(availabilityHandler.GetHeatmap))
	mux.HandleFunc("GET /events/{id}/grid", middleware.WithLogging(availabilityHandler.GetGrid))
	mux.HandleFunc("GET /events/{id}/live", middleware.WithLogging(availabilityHandler.Live))

	// Admin range selection and finalization
	mux.HandleFunc("GET /events/{id}/range", middleware.WithLogging(adminHandler.GetRange))
	mux.HandleFunc("POST /events/{id}/finalize", middleware.WithLogging(adminHandler.Finalize))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meetgrid API v1"))
	})

	return mux
}
