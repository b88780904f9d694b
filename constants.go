package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeAdding
	ModeDragging
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpImport FileOperation = iota
	FileOpExportText
	FileOpExportPNG
)

type ConfirmAction int

const (
	ConfirmDeleteWaypoint ConfirmAction = iota
	ConfirmReplaceWaypoints
	ConfirmQuit
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionReplaceAll ActionType = iota
	ActionSetWaypoint
	ActionAddWaypoint
	ActionRemoveWaypoint
	ActionMoveWaypoint
	ActionReverse
)

// Field names one editable coordinate of a Pose.
type Field int

const (
	FieldX Field = iota
	FieldY
	FieldHeading
)

func (f Field) String() string {
	switch f {
	case FieldX:
		return "X"
	case FieldY:
		return "Y"
	case FieldHeading:
		return "Angle"
	default:
		return "unknown"
	}
}

type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragDropped
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "IDLE"
	case DragDragging:
		return "DRAGGING"
	case DragDropped:
		return "DROPPED"
	default:
		return "UNKNOWN"
	}
}

type ChangeKind int

const (
	ChangeReplaceAll ChangeKind = iota
	ChangeSet
	ChangeAdd
	ChangeRemove
	ChangeMove
	ChangeReverse
)

const (
	minWaypoints = 2    // floor for remove and reorder
	displayScale = 1000 // table shows three decimals
	numFields    = 3

	tableHeaderLines = 3 // title, column names, rule
	footerLines      = 3 // blank, input panel, status

	waypointDeclaration = "new SwerveTrajectoryWaypoint"
)
