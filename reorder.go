package main

import (
	"fmt"
	"strconv"
)

// ReorderController runs the drag and drop move protocol over a store.
// It goes IDLE -> DRAGGING on DragStart and back to IDLE once a drop
// completes or the drag is cancelled.
type ReorderController struct {
	store   *WaypointStore
	state   DragState
	payload string
	onState func(DragState)
}

func NewReorderController(store *WaypointStore) *ReorderController {
	return &ReorderController{store: store}
}

func (r *ReorderController) State() DragState {
	return r.state
}

// OnStateChange registers fn to be called on every state transition,
// including the brief DROPPED state between a drop and the return to IDLE.
func (r *ReorderController) OnStateChange(fn func(DragState)) {
	r.onState = fn
}

func (r *ReorderController) setState(state DragState) {
	if r.state == state {
		return
	}
	r.state = state
	if r.onState != nil {
		r.onState(state)
	}
}

// Source returns the dragged row, or -1 when no drag is active.
func (r *ReorderController) Source() int {
	if r.state != DragDragging {
		return -1
	}
	source, err := strconv.Atoi(r.payload)
	if err != nil {
		return -1
	}
	return source
}

// DragStart begins dragging the waypoint at source. The empty trailing
// row cannot be dragged. The returned payload carries the source index.
func (r *ReorderController) DragStart(source int) (string, error) {
	if source < 0 || source >= r.store.Len() {
		return "", fmt.Errorf("drag row %d: %w", source, ErrEmptyRow)
	}
	r.payload = strconv.Itoa(source)
	r.setState(DragDragging)
	return r.payload, nil
}

// DragOver reports whether a drop on target would be accepted.
func (r *ReorderController) DragOver(target int) bool {
	if r.state != DragDragging {
		return false
	}
	return target != r.Source()
}

// Drop finishes the drag on targetRow. A targetRow at or past the end is
// the empty trailing row. With more than two waypoints the dragged one is
// removed and reinserted at the drop index; otherwise the sequence is
// reversed, whatever the indices.
func (r *ReorderController) Drop(targetRow int) error {
	if r.state != DragDragging {
		return ErrNotDragging
	}
	source := r.Source()
	defer r.reset()

	if r.store.Len() <= minWaypoints {
		r.store.Reverse()
		r.setState(DragDropped)
		return nil
	}

	dropIndex := targetRow
	if targetRow >= r.store.Len() {
		dropIndex = r.store.Len()
	}
	if err := r.store.Move(source, dropIndex); err != nil {
		return fmt.Errorf("drop row %d on %d: %w", source, targetRow, err)
	}
	r.setState(DragDropped)
	return nil
}

// Cancel abandons an active drag.
func (r *ReorderController) Cancel() {
	r.reset()
}

func (r *ReorderController) reset() {
	r.payload = ""
	r.setState(DragIdle)
}
