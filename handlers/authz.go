// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/meetgrid/meetgrid/auth"
)

// adminToken extracts the possession-based credential from the URL.
func adminToken(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// authorizeAdmin checks the supplied token against the event's stored
// admin token. A missing event reports auth.ErrInvalidAdminToken too, so
// the response never reveals whether the event exists.
func authorizeAdmin(db *sql.DB, eventID, token string) error {
	var stored string
	err := db.QueryRow(`SELECT admin_token FROM events WHERE id = $1`, eventID).Scan(&stored)
	if err == sql.ErrNoRows {
		return auth.ErrInvalidAdminToken
	}
	if err != nil {
		return err
	}
	return auth.ValidateAdminToken(token, stored)
}
