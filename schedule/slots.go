// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoDates         = errors.New("at least one date is required")
	ErrBadDate         = errors.New("malformed date")
	ErrBadTime         = errors.New("malformed time of day")
	ErrBadInterval     = errors.New("slot interval must be positive")
	ErrUnknownTimezone = errors.New("unknown timezone")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SlotConfig is the generation input: calendar dates, a daily window, a
// slot interval, and the IANA timezone the window is interpreted in.
type SlotConfig struct {
	Dates            []string // "YYYY-MM-DD", timezone-naive
	DisplayStartTime string   // "HH:MM"
	DisplayEndTime   string   // "HH:MM"
	IntervalMinutes  int
	Timezone         string // IANA name; empty means UTC
}

// GenerateSlots expands an event configuration into the ordered set of
// candidate start instants. Each date is processed independently: the
// window boundaries are resolved to absolute instants in the configured
// zone (so the offset in effect on that specific date applies), then
// slots are emitted from the start instant in interval steps while
// strictly before the end instant. A date whose end resolves at or
// before its start yields no slots; there is no wraparound into the
// next day.
//
// Generation is deterministic: the same config always produces the same
// instants in the same order (dates in input order, times ascending).
// All inputs are validated before the first slot is emitted.
func GenerateSlots(cfg SlotConfig) ([]time.Time, error) {
	if len(cfg.Dates) == 0 {
		return nil, ErrNoDates
	}
	if cfg.IntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadInterval, cfg.IntervalMinutes)
	}

	startH, startM, err := parseTimeOfDay(cfg.DisplayStartTime)
	if err != nil {
		return nil, err
	}
	endH, endM, err := parseTimeOfDay(cfg.DisplayEndTime)
	if err != nil {
		return nil, err
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	// Validate every date up front so a bad entry fails the whole
	// operation instead of leaving a partial sequence.
	parsed := make([]time.Time, 0, len(cfg.Dates))
	for _, d := range cfg.Dates {
		day, err := time.ParseInLocation(dateLayout, d, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadDate, d)
		}
		parsed = append(parsed, day)
	}

	interval := time.Duration(cfg.IntervalMinutes) * time.Minute
	var slots []time.Time

	for _, day := range parsed {
		y, m, d := day.Date()
		// time.Date resolves wall-clock to an absolute instant using the
		// zone offset in effect on that date, which keeps slot placement
		// correct across DST transitions.
		windowStart := time.Date(y, m, d, startH, startM, 0, 0, loc)
		windowEnd := time.Date(y, m, d, endH, endM, 0, 0, loc)

		for t := windowStart; t.Before(windowEnd); t = t.Add(interval) {
			slots = append(slots, t)
		}
	}

	return slots, nil
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return t.Hour(), t.Minute(), nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}
