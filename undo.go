package main

import "log"

func newHistory(store *WaypointStore) *history {
	h := &history{
		undoStack: []Action{},
		redoStack: []Action{},
	}
	store.Subscribe(h.record)
	return h
}

// record turns a store change into an undoable action.
func (h *history) record(change Change) {
	if h.replaying {
		return
	}

	var action Action
	switch change.Kind {
	case ChangeSet:
		action = Action{
			Type:    ActionSetWaypoint,
			Data:    SetWaypointData{Index: change.Index, Pose: change.After[change.Index]},
			Inverse: SetWaypointData{Index: change.Index, Pose: change.Before[change.Index]},
		}
	case ChangeAdd:
		action = Action{
			Type:    ActionAddWaypoint,
			Data:    SetWaypointData{Index: change.Index, Pose: change.After[change.Index]},
			Inverse: SnapshotData{Poses: change.Before},
		}
	case ChangeReverse:
		action = Action{Type: ActionReverse}
	default:
		action = Action{
			Type:    actionTypeFor(change.Kind),
			Data:    SnapshotData{Poses: change.After},
			Inverse: SnapshotData{Poses: change.Before},
		}
	}

	h.undoStack = append(h.undoStack, action)
	h.redoStack = h.redoStack[:0]
}

func actionTypeFor(kind ChangeKind) ActionType {
	switch kind {
	case ChangeRemove:
		return ActionRemoveWaypoint
	case ChangeMove:
		return ActionMoveWaypoint
	default:
		return ActionReplaceAll
	}
}

func (m *model) undo() bool {
	h := m.history
	if len(h.undoStack) == 0 {
		return false
	}

	lastIndex := len(h.undoStack) - 1
	action := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	h.replaying = true
	defer func() { h.replaying = false }()

	switch action.Type {
	case ActionSetWaypoint:
		data := action.Inverse.(SetWaypointData)
		if err := m.store.SetAt(data.Index, data.Pose); err != nil {
			log.Printf("undo: %v", err)
		}
	case ActionReverse:
		m.store.Reverse()
	default:
		data := action.Inverse.(SnapshotData)
		m.store.ReplaceAll(data.Poses)
	}

	h.redoStack = append(h.redoStack, action)
	return true
}

func (m *model) redo() bool {
	h := m.history
	if len(h.redoStack) == 0 {
		return false
	}

	lastIndex := len(h.redoStack) - 1
	action := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	h.replaying = true
	defer func() { h.replaying = false }()

	switch action.Type {
	case ActionSetWaypoint:
		data := action.Data.(SetWaypointData)
		if err := m.store.SetAt(data.Index, data.Pose); err != nil {
			log.Printf("redo: %v", err)
		}
	case ActionAddWaypoint:
		data := action.Data.(SetWaypointData)
		m.store.Add(data.Pose)
	case ActionReverse:
		m.store.Reverse()
	default:
		data := action.Data.(SnapshotData)
		m.store.ReplaceAll(data.Poses)
	}

	h.undoStack = append(h.undoStack, action)
	return true
}
