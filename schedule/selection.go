// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"sort"
)

var ErrUnknownSlot = errors.New("slot not in grid")

// RangeSelection is the result of resolving a drag rectangle: the slots
// it covers, its chronological boundary slots, and how well the range
// matches the participants' availability.
type RangeSelection struct {
	// SlotIDs covered by the rectangle, in chronological order. Cells
	// absent from the grid (a date missing a time row) are skipped.
	SlotIDs []string

	// StartSlotID and EndSlotID are the chronologically first and last
	// slots of the range - the pair handed to the finalizer.
	StartSlotID string
	EndSlotID   string

	// MinCount is the minimum per-slot availability count across the
	// range. It only upper-bounds joint availability.
	MinCount int

	// PerfectMatch holds the response ids available at every slot in
	// the range, sorted. len(PerfectMatch) is the true joint count.
	PerfectMatch []string
}

// SelectRange resolves the rectangle spanned by two anchor slots over
// the grid's position space: [min(dateIdx), max(dateIdx)] columns by
// [min(timeIdx), max(timeIdx)] rows. Corners resolve by grid position
// rather than wall-clock arithmetic, so irregular per-date windows are
// tolerated; rows that do not exist for some date contribute nothing.
//
// The computation is from-scratch each call and O(rectangle area), cheap
// enough to run on every pointer move of an active drag.
func SelectRange(grid *Grid, heatmap *Heatmap, anchorID, currentID string) (RangeSelection, error) {
	a, ok := grid.Position(anchorID)
	if !ok {
		return RangeSelection{}, ErrUnknownSlot
	}
	b, ok := grid.Position(currentID)
	if !ok {
		return RangeSelection{}, ErrUnknownSlot
	}

	minD, maxD := minMax(a.DateIdx, b.DateIdx)
	minT, maxT := minMax(a.TimeIdx, b.TimeIdx)

	selected := make([]Slot, 0, (maxD-minD+1)*(maxT-minT+1))
	for d := minD; d <= maxD; d++ {
		for t := minT; t <= maxT; t++ {
			if s, ok := grid.At(grid.Dates[d], grid.Times[t]); ok {
				selected = append(selected, s)
			}
		}
	}

	// Anchors are always present, so the rectangle is never empty.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].StartAt.Before(selected[j].StartAt)
	})

	sel := RangeSelection{
		SlotIDs:     make([]string, len(selected)),
		StartSlotID: selected[0].ID,
		EndSlotID:   selected[len(selected)-1].ID,
	}

	minCount := -1
	for i, s := range selected {
		sel.SlotIDs[i] = s.ID
		c := heatmap.Count(s.ID)
		if minCount < 0 || c < minCount {
			minCount = c
		}
	}
	sel.MinCount = minCount

	joint := heatmap.intersection(sel.SlotIDs)
	sel.PerfectMatch = make([]string, 0, len(joint))
	for id := range joint {
		sel.PerfectMatch = append(sel.PerfectMatch, id)
	}
	sort.Strings(sel.PerfectMatch)

	return sel, nil
}

func minMax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
