// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Events
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    slot_interval INTEGER NOT NULL DEFAULT 30 CHECK (slot_interval > 0),
    display_start_time TEXT NOT NULL DEFAULT '09:00',
    display_end_time TEXT NOT NULL DEFAULT '23:00',
    timezone TEXT NOT NULL DEFAULT 'UTC',
    admin_token TEXT NOT NULL,
    webhook_url TEXT,
    is_notify_confirmed BOOLEAN NOT NULL DEFAULT TRUE,
    is_notify_updated BOOLEAN NOT NULL DEFAULT TRUE,
    reminder_hours INTEGER NOT NULL DEFAULT 24,
    deadline_at TIMESTAMPTZ,
    confirmed_start_at TIMESTAMPTZ,
    confirmed_end_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (confirmed_end_at IS NULL OR confirmed_end_at > confirmed_start_at)
);

CREATE INDEX IF NOT EXISTS idx_events_deadline ON events(deadline_at) WHERE deadline_at IS NOT NULL;

-- Time slots (immutable once generated, one row per candidate start instant)
CREATE TABLE IF NOT EXISTS time_slots (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    start_at TIMESTAMPTZ NOT NULL,
    UNIQUE (event_id, start_at)
);

CREATE INDEX IF NOT EXISTS idx_time_slots_event_id ON time_slots(event_id);

-- Responses (participant check-ins)
CREATE TABLE IF NOT EXISTS responses (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_name TEXT NOT NULL,
    user_fingerprint TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (event_id, user_fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_responses_event_id ON responses(event_id);

-- Availability (a row means "this response is available at this slot")
CREATE TABLE IF NOT EXISTS availability (
    response_id TEXT NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
    time_slot_id TEXT NOT NULL REFERENCES time_slots(id) ON DELETE CASCADE,
    PRIMARY KEY (response_id, time_slot_id)
);

CREATE INDEX IF NOT EXISTS idx_availability_slot ON availability(time_slot_id);
`
