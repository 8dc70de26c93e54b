// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MeetGrid API server.

MeetGrid is a link-first meeting scheduler: an organizer creates an
event with candidate dates and a daily time window, participants paint
their availability onto a slot grid, and the organizer drags across the
resulting heatmap to pick and confirm the final time. No accounts; the
organizer's power comes from possessing the admin token embedded in
their link.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3324 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - BASE_URL (-b): Public origin for share links (default: http://localhost:PORT)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (events, responses, availability, admin)
  - schedule: Slot generation, grid indexing, heatmap, range selection
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: ID, token, and fingerprint generation and validation
  - realtime: In-process change hub backing the SSE stream
  - notify: Discord webhook notifications
  - reminder: Cron-driven deadline reminders
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
