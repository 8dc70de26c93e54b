// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reminder runs the periodic deadline-reminder scan.

Every 10 minutes (robfig/cron "@every 10m") the runner selects events
that have both a response deadline in the future and a webhook URL,
computes remindAt = deadline - reminder_hours, and fires a "remind"
notification when the current instant falls inside the 20-minute window
starting at remindAt. The window tolerates trigger jitter; a run landing
twice inside one window duplicates the reminder, which is accepted as
harmless.

	runner := reminder.NewRunner(db, sender)
	if err := runner.Start(); err != nil { ... }
	defer runner.Stop()

RunOnce is exported so tests can drive the scan at a chosen instant.
*/
package reminder
