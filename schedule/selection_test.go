// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"testing"
	"time"
)

// testGrid builds a 3 date × 4 time grid with ids like "d0t2".
func testGrid(t *testing.T) *Grid {
	t.Helper()

	var slots []Slot
	for d := 0; d < 3; d++ {
		for tm := 0; tm < 4; tm++ {
			slots = append(slots, Slot{
				ID:      gridID(d, tm),
				StartAt: time.Date(2026, 1, 5+d, 9+tm, 0, 0, 0, time.UTC),
			})
		}
	}
	return BuildGrid(slots, time.UTC)
}

func gridID(d, tm int) string {
	return "d" + string(rune('0'+d)) + "t" + string(rune('0'+tm))
}

func TestSelectRangeRectangle(t *testing.T) {
	grid := testGrid(t)
	heatmap := BuildHeatmap(nil, 0)

	// Anchor (0,1), current (1,3): 2 dates × 3 times = 6 slots
	sel, err := SelectRange(grid, heatmap, "d0t1", "d1t3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sel.SlotIDs) != 6 {
		t.Fatalf("Expected 6 slots in rectangle, got %d", len(sel.SlotIDs))
	}
	if sel.StartSlotID != "d0t1" {
		t.Errorf("Expected start d0t1, got %s", sel.StartSlotID)
	}
	if sel.EndSlotID != "d1t3" {
		t.Errorf("Expected end d1t3, got %s", sel.EndSlotID)
	}

	// Chronological order: all of day 0 before any of day 1
	want := []string{"d0t1", "d0t2", "d0t3", "d1t1", "d1t2", "d1t3"}
	for i, id := range want {
		if sel.SlotIDs[i] != id {
			t.Errorf("Slot %d: expected %s, got %s", i, id, sel.SlotIDs[i])
		}
	}
}

// Dragging up-left produces the same rectangle as down-right.
func TestSelectRangeReversedCorners(t *testing.T) {
	grid := testGrid(t)
	heatmap := BuildHeatmap(nil, 0)

	forward, err := SelectRange(grid, heatmap, "d0t0", "d2t2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	backward, err := SelectRange(grid, heatmap, "d2t2", "d0t0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(forward.SlotIDs) != len(backward.SlotIDs) {
		t.Fatalf("Rectangle sizes differ: %d vs %d", len(forward.SlotIDs), len(backward.SlotIDs))
	}
	for i := range forward.SlotIDs {
		if forward.SlotIDs[i] != backward.SlotIDs[i] {
			t.Errorf("Slot %d differs: %s vs %s", i, forward.SlotIDs[i], backward.SlotIDs[i])
		}
	}
	if backward.StartSlotID != "d0t0" || backward.EndSlotID != "d2t2" {
		t.Errorf("Expected chronological boundaries d0t0..d2t2, got %s..%s",
			backward.StartSlotID, backward.EndSlotID)
	}
}

func TestSelectRangeSingleSlot(t *testing.T) {
	grid := testGrid(t)
	heatmap := BuildHeatmap(nil, 0)

	sel, err := SelectRange(grid, heatmap, "d1t2", "d1t2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sel.SlotIDs) != 1 || sel.SlotIDs[0] != "d1t2" {
		t.Errorf("Expected single-slot selection d1t2, got %v", sel.SlotIDs)
	}
	if sel.StartSlotID != "d1t2" || sel.EndSlotID != "d1t2" {
		t.Error("Expected start and end to be the anchor slot")
	}
}

func TestSelectRangeUnknownSlot(t *testing.T) {
	grid := testGrid(t)
	heatmap := BuildHeatmap(nil, 0)

	_, err := SelectRange(grid, heatmap, "d0t0", "nope")
	if !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Expected ErrUnknownSlot, got %v", err)
	}
}

func TestSelectRangeSkipsMissingCells(t *testing.T) {
	// Day 0 has 09:00 and 10:00; day 1 only 10:00. The union row 09:00
	// exists but day 1 has no slot there.
	slots := []Slot{
		slotAt("a", 2026, 1, 5, 9, 0),
		slotAt("b", 2026, 1, 5, 10, 0),
		slotAt("c", 2026, 1, 6, 10, 0),
	}
	grid := BuildGrid(slots, time.UTC)
	heatmap := BuildHeatmap(nil, 0)

	sel, err := SelectRange(grid, heatmap, "a", "c")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sel.SlotIDs) != 3 {
		t.Fatalf("Expected 3 slots (missing cell skipped), got %d", len(sel.SlotIDs))
	}
}

// Min count only upper-bounds joint availability; the intersection is
// the true perfect-match set.
func TestSelectRangePerfectMatchVsMinCount(t *testing.T) {
	grid := testGrid(t)

	// Slot d0t0: {alice, bob}; slot d0t1: {bob, carol}. Min count is 2
	// but only bob is available throughout.
	heatmap := BuildHeatmap([]AvailabilityPair{
		{ResponseID: "alice", SlotID: "d0t0"},
		{ResponseID: "bob", SlotID: "d0t0"},
		{ResponseID: "bob", SlotID: "d0t1"},
		{ResponseID: "carol", SlotID: "d0t1"},
	}, 3)

	sel, err := SelectRange(grid, heatmap, "d0t0", "d0t1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sel.MinCount != 2 {
		t.Errorf("Expected min count 2, got %d", sel.MinCount)
	}
	if len(sel.PerfectMatch) != 1 || sel.PerfectMatch[0] != "bob" {
		t.Errorf("Expected perfect match [bob], got %v", sel.PerfectMatch)
	}
}

func TestSelectRangeEmptyIntersection(t *testing.T) {
	grid := testGrid(t)
	heatmap := BuildHeatmap([]AvailabilityPair{
		{ResponseID: "alice", SlotID: "d0t0"},
		{ResponseID: "bob", SlotID: "d0t1"},
	}, 2)

	sel, err := SelectRange(grid, heatmap, "d0t0", "d0t1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sel.MinCount != 1 {
		t.Errorf("Expected min count 1, got %d", sel.MinCount)
	}
	if len(sel.PerfectMatch) != 0 {
		t.Errorf("Expected empty perfect match, got %v", sel.PerfectMatch)
	}
}
