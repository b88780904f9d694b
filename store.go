package main

import "fmt"

// Change describes one store mutation. Before and After are full snapshots.
type Change struct {
	Kind   ChangeKind
	Index  int
	Before []Pose
	After  []Pose
}

// WaypointStore is the ordered waypoint sequence of one editing session.
// Index 0 is the start of the path. It is not safe for concurrent use;
// every mutation is expected to come from the UI loop.
type WaypointStore struct {
	poses     []Pose
	listeners map[int]func(Change)
	nextID    int
}

func NewWaypointStore(initial ...Pose) *WaypointStore {
	poses := make([]Pose, len(initial))
	copy(poses, initial)
	return &WaypointStore{
		poses:     poses,
		listeners: make(map[int]func(Change)),
	}
}

// Subscribe registers fn for every subsequent change and returns a
// function that removes it.
func (s *WaypointStore) Subscribe(fn func(Change)) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

// Close ends the session's use of the store. Subscribers are dropped.
func (s *WaypointStore) Close() {
	s.listeners = make(map[int]func(Change))
}

func (s *WaypointStore) Len() int {
	return len(s.poses)
}

func (s *WaypointStore) At(index int) (Pose, error) {
	if index < 0 || index >= len(s.poses) {
		return Pose{}, fmt.Errorf("at %d (len %d): %w", index, len(s.poses), ErrIndexOutOfRange)
	}
	return s.poses[index], nil
}

// Poses returns a copy of the current sequence.
func (s *WaypointStore) Poses() []Pose {
	return clonePoses(s.poses)
}

// ReplaceAll swaps the whole sequence. No floor is applied here; callers
// that need one check before calling.
func (s *WaypointStore) ReplaceAll(poses []Pose) {
	before := clonePoses(s.poses)
	s.poses = clonePoses(poses)
	s.emit(ChangeReplaceAll, -1, before)
}

func (s *WaypointStore) SetAt(index int, pose Pose) error {
	if index < 0 || index >= len(s.poses) {
		return fmt.Errorf("set %d (len %d): %w", index, len(s.poses), ErrIndexOutOfRange)
	}
	before := clonePoses(s.poses)
	s.poses[index] = pose
	s.emit(ChangeSet, index, before)
	return nil
}

func (s *WaypointStore) Add(pose Pose) {
	before := clonePoses(s.poses)
	s.poses = append(s.poses, pose)
	s.emit(ChangeAdd, len(s.poses)-1, before)
}

// RemoveSelected removes the first waypoint equal to pose. It refuses
// when the store holds minWaypoints or fewer and reports whether a
// waypoint was removed.
func (s *WaypointStore) RemoveSelected(pose Pose) bool {
	if len(s.poses) <= minWaypoints {
		return false
	}
	for i, p := range s.poses {
		if p == pose {
			before := clonePoses(s.poses)
			s.poses = append(s.poses[:i], s.poses[i+1:]...)
			s.emit(ChangeRemove, i, before)
			return true
		}
	}
	return false
}

// Move removes the waypoint at from and inserts it at to. The target index
// is used as given against the shortened list, it is not corrected for the
// removal. A target past the end appends.
func (s *WaypointStore) Move(from, to int) error {
	if from < 0 || from >= len(s.poses) {
		return fmt.Errorf("move from %d (len %d): %w", from, len(s.poses), ErrIndexOutOfRange)
	}
	if to < 0 {
		return fmt.Errorf("move to %d: %w", to, ErrIndexOutOfRange)
	}
	before := clonePoses(s.poses)

	moved := s.poses[from]
	rest := append(s.poses[:from:from], s.poses[from+1:]...)
	if to > len(rest) {
		to = len(rest)
	}
	poses := make([]Pose, 0, len(before))
	poses = append(poses, rest[:to]...)
	poses = append(poses, moved)
	poses = append(poses, rest[to:]...)
	s.poses = poses

	s.emit(ChangeMove, to, before)
	return nil
}

func (s *WaypointStore) Reverse() {
	before := clonePoses(s.poses)
	for i, j := 0, len(s.poses)-1; i < j; i, j = i+1, j-1 {
		s.poses[i], s.poses[j] = s.poses[j], s.poses[i]
	}
	s.emit(ChangeReverse, -1, before)
}

func (s *WaypointStore) emit(kind ChangeKind, index int, before []Pose) {
	if len(s.listeners) == 0 {
		return
	}
	change := Change{
		Kind:   kind,
		Index:  index,
		Before: before,
		After:  clonePoses(s.poses),
	}
	for _, fn := range s.listeners {
		fn(change)
	}
}

func clonePoses(poses []Pose) []Pose {
	out := make([]Pose, len(poses))
	copy(out, poses)
	return out
}
