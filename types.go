package main

import "github.com/charmbracelet/bubbles/textinput"

type model struct {
	width  int
	height int

	store   *WaypointStore
	editor  *EditCommitController
	reorder *ReorderController
	history *history

	cursorRow  int
	cursorCol  Field
	offset     int
	dropTarget int
	mouseDrag  bool
	mode       Mode
	help       bool

	editInput  textinput.Model
	formInputs [numFields]textinput.Model
	formFocus  int
	fileInput  textinput.Model
	fileOp     FileOperation

	confirmAction  ConfirmAction
	pendingImport  []Pose
	pendingDelete  Pose
	pendingFile    string
	filename       string
	errorMessage   string
	successMessage string
	config         *Config
}

// history holds the undo and redo stacks. It lives behind a pointer so the
// store subscription survives bubbletea copying the model.
type history struct {
	undoStack []Action
	redoStack []Action
	replaying bool
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type SetWaypointData struct {
	Index int
	Pose  Pose
}

type SnapshotData struct {
	Poses []Pose
}
