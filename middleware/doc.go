// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: structured request/completion logging via slog
  - CORS: permissive cross-origin headers plus OPTIONS preflight

# JSON Helpers

  - JSONResponse: encode a value with status code
  - ErrorResponse: encode a models.ErrorResponse
  - ParseJSONBody: decode a request body into a struct

Handlers use these directly rather than a framework:

	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
