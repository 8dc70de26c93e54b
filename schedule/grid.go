// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"sort"
	"time"
)

// Slot is the grid's view of a generated time slot.
type Slot struct {
	ID      string
	StartAt time.Time
}

// Position is a slot's coordinates in the grid: date column index and
// time-of-day row index.
type Position struct {
	DateIdx int
	TimeIdx int
}

// Grid arranges an event's slots into a date × time-of-day structure.
// Columns are the sorted distinct dates; rows are the union of all
// time-of-day labels across dates, sorted. A date missing a row is an
// empty cell, not an error.
type Grid struct {
	Dates []string // "YYYY-MM-DD", ascending
	Times []string // "HH:MM", ascending

	cells map[string]map[string]Slot // date -> time -> slot
	pos   map[string]Position        // slot id -> grid position
	slots map[string]Slot            // slot id -> slot
}

// BuildGrid indexes slots by their wall-clock date and time in the given
// location. Every slot appears exactly once; lookups in both directions
// are O(1).
func BuildGrid(slots []Slot, loc *time.Location) *Grid {
	if loc == nil {
		loc = time.UTC
	}

	g := &Grid{
		cells: make(map[string]map[string]Slot),
		pos:   make(map[string]Position, len(slots)),
		slots: make(map[string]Slot, len(slots)),
	}

	dateSet := make(map[string]struct{})
	timeSet := make(map[string]struct{})

	for _, s := range slots {
		local := s.StartAt.In(loc)
		dateKey := local.Format(dateLayout)
		timeKey := local.Format(timeLayout)

		dateSet[dateKey] = struct{}{}
		timeSet[timeKey] = struct{}{}

		if g.cells[dateKey] == nil {
			g.cells[dateKey] = make(map[string]Slot)
		}
		g.cells[dateKey][timeKey] = s
		g.slots[s.ID] = s
	}

	g.Dates = sortedKeys(dateSet)
	g.Times = sortedKeys(timeSet)

	for di, d := range g.Dates {
		for ti, t := range g.Times {
			if s, ok := g.cells[d][t]; ok {
				g.pos[s.ID] = Position{DateIdx: di, TimeIdx: ti}
			}
		}
	}

	return g
}

// At returns the slot at a (date, time) cell, if one exists.
func (g *Grid) At(date, timeOfDay string) (Slot, bool) {
	s, ok := g.cells[date][timeOfDay]
	return s, ok
}

// Position returns the grid coordinates of a slot id.
func (g *Grid) Position(slotID string) (Position, bool) {
	p, ok := g.pos[slotID]
	return p, ok
}

// Slot returns the slot with the given id.
func (g *Grid) Slot(slotID string) (Slot, bool) {
	s, ok := g.slots[slotID]
	return s, ok
}

// Len returns the number of indexed slots.
func (g *Grid) Len() int {
	return len(g.slots)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
