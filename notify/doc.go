// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers event notifications to Discord webhooks.

Four kinds are sent, each with its own embed color and copy:

  - create: a new event wants availability responses
  - finalize: the admin confirmed a meeting time (first confirmation)
  - update: a previously confirmed time was rescheduled
  - remind: the response deadline is approaching

Delivery is fire-and-forget from the caller's point of view: handlers
invoke Send in a goroutine and log failures, so a dead webhook can never
fail or delay the operation that triggered it.

	sender := notify.NewDiscordSender(cfg.BaseURL)
	go func() {
		if err := sender.Send(url, models.NotifyFinalize, summary); err != nil {
			slog.Warn("notification failed", "error", err)
		}
	}()

The Sender interface exists so tests can substitute a recording fake.
*/
package notify
