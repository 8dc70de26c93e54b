// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier and credential generation.

# Admin Tokens

Admin access is possession-based: an opaque random token is generated at
event creation, stored with the event, and handed back to the creator.
Any later request carrying a `token` query parameter equal to the stored
value is an admin request.

	token, err := auth.GenerateAdminToken()
	err = auth.ValidateAdminToken(supplied, stored) // constant-time

ValidateAdminToken never matches an empty token and uses hmac.Equal to
avoid timing leaks.

# Identifiers

	auth.NewEventID()       // short nanoid, appears in share URLs
	auth.NewRowID()         // uuid, for slot and response rows
	auth.GenerateFingerprint() // opaque "remember me" device id
*/
package auth
