// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateEventRequest: title, dates, daily window, interval, timezone
  - UpdateSettingsRequest: partial settings patch (pointer fields)
  - CheckInRequest: name, fingerprint
  - SaveAvailabilityRequest: slot_ids (the participant's full set)
  - FinalizeRequest: start_slot_id, end_slot_id

# Response Types

Types for JSON responses:

  - CreateEventResponse: event_id, admin_token, share_url, slot_count
  - EventDetailResponse: event, slots, is_admin
  - CheckInResponse: response_id, fingerprint, is_admin, existing
  - HeatmapResponse: total_participants, per-slot counts and fill ratios
  - GridResponse: date columns, time rows, cells
  - RangeResponse: rectangle slot ids, boundary ids, min_count, perfect match
  - FinalizeResponse: confirmed interval and finalize/update classification
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Event: event configuration, notification settings, confirmed schedule
  - TimeSlot: one discrete candidate start instant (UTC)
  - Participant: a checked-in responder

The Event admin token and webhook URL carry `json:"-"` and are never
serialized to clients.

# Constants

Notification kinds:

	NotifyCreate   = "create"
	NotifyFinalize = "finalize"
	NotifyUpdate   = "update"
	NotifyRemind   = "remind"

Event defaults:

	DefaultSlotInterval     = 30
	DefaultDisplayStartTime = "09:00"
	DefaultDisplayEndTime   = "23:00"
	DefaultTimezone         = "UTC"
	DefaultReminderHours    = 24
*/
package models
