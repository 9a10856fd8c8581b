package main

import (
	"fmt"
	"iter"
)

// PathStore is the ordered waypoint list. It is the single source of truth for
// the editor; markers, connectors and form rows are derived from it.
type PathStore struct {
	waypoints []Waypoint
}

func NewPathStore(initial ...Waypoint) *PathStore {
	s := &PathStore{waypoints: make([]Waypoint, 0, len(initial))}
	for _, w := range initial {
		s.waypoints = append(s.waypoints, w.Clone())
	}
	return s
}

func (s *PathStore) Len() int {
	return len(s.waypoints)
}

func (s *PathStore) Append(w Waypoint) int {
	s.waypoints = append(s.waypoints, w.Clone())
	return len(s.waypoints) - 1
}

func (s *PathStore) Get(index int) (Waypoint, error) {
	if err := s.checkIndex(index); err != nil {
		return Waypoint{}, err
	}
	return s.waypoints[index].Clone(), nil
}

// Set applies the non-nil fields of patch to the waypoint at index.
func (s *PathStore) Set(index int, patch Patch) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	patch.apply(&s.waypoints[index])
	return nil
}

// RemoveAt deletes the waypoint at index and shifts everything above it down
// by one. An out-of-range index leaves the store untouched.
func (s *PathStore) RemoveAt(index int) (Waypoint, error) {
	if err := s.checkIndex(index); err != nil {
		return Waypoint{}, err
	}
	removed := s.waypoints[index]
	s.waypoints = append(s.waypoints[:index], s.waypoints[index+1:]...)
	return removed, nil
}

// Replace swaps in a whole new path.
func (s *PathStore) Replace(path []Waypoint) {
	s.waypoints = s.waypoints[:0]
	for _, w := range path {
		s.waypoints = append(s.waypoints, w.Clone())
	}
}

// All yields index/waypoint pairs in path order. Waypoints are copies.
func (s *PathStore) All() iter.Seq2[int, Waypoint] {
	return func(yield func(int, Waypoint) bool) {
		for i := 0; i < len(s.waypoints); i++ {
			if !yield(i, s.waypoints[i].Clone()) {
				return
			}
		}
	}
}

func (s *PathStore) Snapshot() []Waypoint {
	out := make([]Waypoint, 0, len(s.waypoints))
	for _, w := range s.All() {
		out = append(out, w)
	}
	return out
}

func (s *PathStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.waypoints) {
		return fmt.Errorf("waypoint %d of %d: %w", index, len(s.waypoints), ErrOutOfRange)
	}
	return nil
}

// Patch is a partial waypoint update. Nil fields are left alone.
type Patch struct {
	X              *float64
	Y              *float64
	Timeout        *float64
	Radians        *float64
	MaxSpeed       *float64
	MinSpeed       *float64
	Forwards       *bool
	EarlyExitRange *float64
	CodeBefore     *string
	CodeAfter      *string

	// Clear names optional fields to unset, using form field names.
	Clear []string
}

func (p Patch) touchesPosition() bool {
	return p.X != nil || p.Y != nil
}

func (p Patch) apply(w *Waypoint) {
	if p.X != nil {
		w.X = *p.X
	}
	if p.Y != nil {
		w.Y = *p.Y
	}
	if p.Timeout != nil {
		w.Timeout = *p.Timeout
	}
	if p.Radians != nil {
		w.Radians = floatPtr(*p.Radians)
	}
	if p.CodeBefore != nil {
		w.CodeBefore = *p.CodeBefore
	}
	if p.CodeAfter != nil {
		w.CodeAfter = *p.CodeAfter
	}
	if p.MaxSpeed != nil || p.MinSpeed != nil || p.Forwards != nil || p.EarlyExitRange != nil {
		if w.Attributes == nil {
			w.Attributes = &Attributes{}
		}
		if p.MaxSpeed != nil {
			w.Attributes.MaxSpeed = floatPtr(*p.MaxSpeed)
		}
		if p.MinSpeed != nil {
			w.Attributes.MinSpeed = floatPtr(*p.MinSpeed)
		}
		if p.Forwards != nil {
			w.Attributes.Forwards = boolPtr(*p.Forwards)
		}
		if p.EarlyExitRange != nil {
			w.Attributes.EarlyExitRange = floatPtr(*p.EarlyExitRange)
		}
	}
	for _, field := range p.Clear {
		switch field {
		case FieldRadians:
			w.Radians = nil
		case FieldMaxSpeed:
			if w.Attributes != nil {
				w.Attributes.MaxSpeed = nil
			}
		case FieldMinSpeed:
			if w.Attributes != nil {
				w.Attributes.MinSpeed = nil
			}
		case FieldForwards:
			if w.Attributes != nil {
				w.Attributes.Forwards = nil
			}
		case FieldEarlyExitRange:
			if w.Attributes != nil {
				w.Attributes.EarlyExitRange = nil
			}
		}
	}
	if w.Attributes.Empty() {
		w.Attributes = nil
	}
}
