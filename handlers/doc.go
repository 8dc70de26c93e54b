// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the scheduling API.
//
// Handlers talk to Postgres directly with inline SQL and constructor
// injected dependencies. Admin operations are gated by the possession
// based token carried in the "token" query parameter; a failed check is
// always a plain 401 so responses never reveal whether an event exists.
// Mutating handlers signal the realtime hub so live watchers of the
// event refetch.
package handlers
