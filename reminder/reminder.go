// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/meetgrid/meetgrid/notify"
)

// Window is how long after the computed remind instant a reminder is
// still considered due. It absorbs trigger-interval jitter; the cost is
// a possible duplicate send if two runs land inside the same window.
const Window = 20 * time.Minute

// Schedule is the cron spec the runner fires on.
const Schedule = "@every 10m"

// Runner periodically scans events with an upcoming response deadline
// and fires a reminder webhook when the deadline-minus-lead instant has
// just passed.
type Runner struct {
	db     *sql.DB
	sender notify.Sender
	cron   *cron.Cron
}

func NewRunner(db *sql.DB, sender notify.Sender) *Runner {
	return &Runner{
		db:     db,
		sender: sender,
		cron:   cron.New(),
	}
}

// Start schedules the periodic scan. Errors inside a run are logged,
// never fatal.
func (r *Runner) Start() error {
	_, err := r.cron.AddFunc(Schedule, func() {
		sent, err := r.RunOnce(time.Now())
		if err != nil {
			slog.Error("reminder run failed", "error", err)
			return
		}
		if sent > 0 {
			slog.Info("reminders sent", "count", sent)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight run.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce scans once at the given instant and returns how many
// reminders were sent. Split out from the cron wiring for testability.
func (r *Runner) RunOnce(now time.Time) (int, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, webhook_url, deadline_at, reminder_hours
		FROM events
		WHERE deadline_at IS NOT NULL
		  AND webhook_url IS NOT NULL AND webhook_url <> ''
		  AND deadline_at > $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to query deadline events: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		id, title, description, webhookURL string
		deadline                           time.Time
		reminderHours                      int
	}

	var due []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.title, &c.description, &c.webhookURL, &c.deadline, &c.reminderHours); err != nil {
			return 0, fmt.Errorf("failed to scan event: %w", err)
		}
		if Due(now, c.deadline, c.reminderHours) {
			due = append(due, c)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read deadline events: %w", err)
	}

	sent := 0
	for _, c := range due {
		err := r.sender.Send(c.webhookURL, "remind", notify.EventSummary{
			ID:          c.id,
			Title:       c.title,
			Description: c.description,
		})
		if err != nil {
			slog.Warn("reminder notification failed", "event_id", c.id, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

// Due reports whether now falls in the half-open reminder window
// [deadline - lead, deadline - lead + Window).
func Due(now, deadline time.Time, reminderHours int) bool {
	if reminderHours <= 0 {
		return false
	}
	remindAt := deadline.Add(-time.Duration(reminderHours) * time.Hour)
	return !now.Before(remindAt) && now.Before(remindAt.Add(Window))
}
