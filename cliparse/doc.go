// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence; environment variables are the fallback:

  - -p / PORT: server port (default 3324)
  - -d / DATABASE_URL: PostgreSQL connection string (required)
  - -b / BASE_URL: public base URL for share links and webhook payloads
    (defaults to http://localhost:<port>)

Example:

	cfg, err := cliparse.ParseFlags(os.Args[1:])
*/
package cliparse
