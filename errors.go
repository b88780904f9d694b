package main

import "errors"

var (
	ErrIndexOutOfRange = errors.New("waypoint index out of range")
	ErrNonFiniteValue  = errors.New("value is not a finite number")
	ErrUnknownField    = errors.New("unknown waypoint field")
	ErrNotDragging     = errors.New("no drag in progress")
	ErrEmptyRow        = errors.New("cannot drag the empty row")
	ErrTooFewWaypoints = errors.New("at least 2 waypoints are required")
	ErrNothingToExport = errors.New("nothing to export")
)
