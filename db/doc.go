// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db contains the database schema.

# Tables

  - events: configuration, admin token, notification settings, and the
    confirmed schedule (confirmed_start_at / confirmed_end_at)
  - time_slots: one row per generated candidate start instant (UTC);
    immutable once generated for an event
  - responses: participant check-ins (name, fingerprint, is_admin)
  - availability: (response_id, time_slot_id) pairs; a pair means the
    participant is available at that slot

Schema creation is idempotent:

	err := db.CreateSchema(dbConn)

All foreign keys cascade on delete so removing an event removes its
slots, responses, and availability in one statement.
*/
package db
