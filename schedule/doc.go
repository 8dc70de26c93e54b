// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schedule is the availability engine: slot generation, grid
indexing, heatmap aggregation, and range selection. It is pure - no
database, no HTTP - so every piece is testable in isolation and callers
can rebuild any structure from a fresh read of stored state at any time.

# Slot Generation

An event's configuration expands into discrete candidate start instants:

	slots, err := schedule.GenerateSlots(schedule.SlotConfig{
		Dates:            []string{"2026-09-01", "2026-09-02"},
		DisplayStartTime: "09:00",
		DisplayEndTime:   "12:00",
		IntervalMinutes:  30,
		Timezone:         "Asia/Tokyo",
	})

The daily window is resolved per-date in the event's IANA timezone, so
slots stay on the intended wall-clock times across DST transitions. The
window end is exclusive, and a date whose end resolves at or before its
start produces no slots (no overnight wraparound).

# Grid

BuildGrid arranges slots into date columns and time-of-day rows:

	grid := schedule.BuildGrid(slots, loc)
	slot, ok := grid.At("2026-09-01", "09:30")
	pos, ok := grid.Position(slotID)

Rows are the union across all dates; missing cells are absent, not
errors.

# Heatmap

BuildHeatmap reduces the full availability relation to per-slot
participant sets. The reduction is commutative and always rebuilt from
scratch, so it self-heals from any missed change notification:

	hm := schedule.BuildHeatmap(pairs, totalParticipants)
	hm.Count(slotID)
	hm.FillRatio(slotID)

# Range Selection

SelectRange resolves a drag rectangle by grid position and computes both
the min-count metric and the exact intersection of per-slot participant
sets (the "perfect match" - the participants available at every slot in
the range):

	sel, err := schedule.SelectRange(grid, hm, anchorID, currentID)

DragState wraps this in an explicit Idle/Dragging state machine for
pointer gestures; no transition persists anything.
*/
package schedule
