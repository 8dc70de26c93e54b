// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import "errors"

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("drag already in progress")
)

// DragPhase is the state of an admin range-selection gesture.
type DragPhase int

const (
	PhaseIdle DragPhase = iota
	PhaseDragging
)

// DragState is the explicit finite-state machine behind an admin's
// drag-to-select gesture: Idle --PointerDown--> Dragging, PointerMove
// recomputes the rectangle from the anchor, PointerUp commits and
// returns to Idle. Nothing is persisted by any transition; the returned
// selection only takes effect if the caller hands it to the finalizer.
type DragState struct {
	grid    *Grid
	heatmap *Heatmap

	phase    DragPhase
	anchorID string
	current  RangeSelection
}

// NewDragState creates an idle gesture tracker over a grid and the
// current heatmap snapshot.
func NewDragState(grid *Grid, heatmap *Heatmap) *DragState {
	return &DragState{grid: grid, heatmap: heatmap}
}

// Phase returns the current gesture phase.
func (d *DragState) Phase() DragPhase {
	return d.phase
}

// PointerDown starts a drag anchored at the given slot.
func (d *DragState) PointerDown(slotID string) error {
	if d.phase != PhaseIdle {
		return ErrAlreadyDragging
	}
	sel, err := SelectRange(d.grid, d.heatmap, slotID, slotID)
	if err != nil {
		return err
	}
	d.phase = PhaseDragging
	d.anchorID = slotID
	d.current = sel
	return nil
}

// PointerMove recomputes the rectangle from the anchor to the slot the
// pointer is now over. A move over a slot not in the grid keeps the
// previous rectangle.
func (d *DragState) PointerMove(slotID string) (RangeSelection, error) {
	if d.phase != PhaseDragging {
		return RangeSelection{}, ErrNotDragging
	}
	sel, err := SelectRange(d.grid, d.heatmap, d.anchorID, slotID)
	if err != nil {
		return d.current, err
	}
	d.current = sel
	return sel, nil
}

// PointerUp ends the drag and returns the committed selection.
func (d *DragState) PointerUp() (RangeSelection, error) {
	if d.phase != PhaseDragging {
		return RangeSelection{}, ErrNotDragging
	}
	sel := d.current
	d.reset()
	return sel, nil
}

// Cancel abandons the drag with no result. Releasing the pointer
// outside the grid or leaving the page maps to this transition.
func (d *DragState) Cancel() {
	d.reset()
}

// Selection returns the rectangle of the drag in progress.
func (d *DragState) Selection() (RangeSelection, bool) {
	if d.phase != PhaseDragging {
		return RangeSelection{}, false
	}
	return d.current, true
}

func (d *DragState) reset() {
	d.phase = PhaseIdle
	d.anchorID = ""
	d.current = RangeSelection{}
}
