// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the MeetGrid API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, hub, notifier)

# Endpoints

Health:

	GET /health

Event management:

	POST  /events                     - Create event with its slot set
	GET   /events/{id}                - Event details and slots
	PATCH /events/{id}/settings       - Update settings (admin)
	POST  /events/{id}/webhook-test   - Send a test notification (admin)

Participants (public):

	POST /events/{id}/responses - Check in by name
	GET  /events/{id}/responses - List participants

Availability and aggregation (public):

	PUT /events/{id}/responses/{rid}/availability - Replace slot set
	GET /events/{id}/responses/{rid}/availability - Current slot set
	GET /events/{id}/heatmap                      - Per-slot counts and fill ratios
	GET /events/{id}/grid                         - Date × time slot arrangement
	GET /events/{id}/live                         - SSE change stream

Admin selection (requires ?token=):

	GET  /events/{id}/range    - Resolve a drag rectangle to a slot range
	POST /events/{id}/finalize - Confirm the event time

# Handler Initialization

The router creates handler instances with dependency injection:

	eventHandler := handlers.NewEventHandler(db, cfg, notifier)
	responseHandler := handlers.NewResponseHandler(db, hub)
	availabilityHandler := handlers.NewAvailabilityHandler(db, hub)
	adminHandler := handlers.NewAdminHandler(db, hub, notifier)

All handlers receive the database connection; mutating handlers also get
the realtime hub so live watchers are signalled.
*/
package router
