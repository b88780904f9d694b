package main

import "fmt"

// EditCommitController applies single-field edits from the table.
type EditCommitController struct {
	store *WaypointStore
}

func NewEditCommitController(store *WaypointStore) *EditCommitController {
	return &EditCommitController{store: store}
}

// Commit replaces one coordinate of the waypoint at row with value and
// writes the new pose back at the same row. The other two coordinates are
// copied from the current pose. Values are stored unrounded.
func (c *EditCommitController) Commit(row int, field Field, value float64) error {
	if !isFinite(value) {
		return fmt.Errorf("edit %s at row %d: %w", field, row, ErrNonFiniteValue)
	}
	current, err := c.store.At(row)
	if err != nil {
		return fmt.Errorf("edit %s: %w", field, err)
	}

	var pose Pose
	switch field {
	case FieldX:
		pose = current.WithX(value)
	case FieldY:
		pose = current.WithY(value)
	case FieldHeading:
		pose = current.WithHeading(value)
	default:
		return fmt.Errorf("edit field %d: %w", int(field), ErrUnknownField)
	}
	return c.store.SetAt(row, pose)
}
