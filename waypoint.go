package main

import (
	"errors"
	"math"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Waypoint is one stop on the path. Index 0 is the initial pose; its Timeout
// is ignored and Radians carries the starting heading.
type Waypoint struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Timeout    float64     `json:"timeout"`
	Radians    *float64    `json:"radians,omitempty"`
	Attributes *Attributes `json:"attributes,omitempty"`
	CodeBefore string      `json:"codeBefore,omitempty"`
	CodeAfter  string      `json:"codeAfter,omitempty"`
}

// Attributes are passed through to the move statement's parameter literal.
type Attributes struct {
	MaxSpeed       *float64 `json:"maxSpeed,omitempty"`
	MinSpeed       *float64 `json:"minSpeed,omitempty"`
	Forwards       *bool    `json:"forwards,omitempty"`
	EarlyExitRange *float64 `json:"earlyExitRange,omitempty"`
}

func (a Attributes) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.MaxSpeed, validation.By(finite), validation.Min(0.0)),
		validation.Field(&a.MinSpeed, validation.By(finite), validation.Min(0.0)),
		validation.Field(&a.EarlyExitRange, validation.By(finite), validation.Min(0.0)),
	)
}

// Empty reports whether no attribute is set.
func (a *Attributes) Empty() bool {
	return a == nil || (a.MaxSpeed == nil && a.MinSpeed == nil && a.Forwards == nil && a.EarlyExitRange == nil)
}

func (w Waypoint) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.X, validation.By(finite)),
		validation.Field(&w.Y, validation.By(finite)),
		validation.Field(&w.Timeout, validation.By(finite), validation.Min(0.0)),
		validation.Field(&w.Radians, validation.By(finite)),
		validation.Field(&w.Attributes),
	)
}

// Clone returns a deep copy so callers never share optional fields with the store.
func (w Waypoint) Clone() Waypoint {
	out := w
	if w.Radians != nil {
		out.Radians = floatPtr(*w.Radians)
	}
	if w.Attributes != nil {
		a := *w.Attributes
		if a.MaxSpeed != nil {
			a.MaxSpeed = floatPtr(*a.MaxSpeed)
		}
		if a.MinSpeed != nil {
			a.MinSpeed = floatPtr(*a.MinSpeed)
		}
		if a.Forwards != nil {
			a.Forwards = boolPtr(*a.Forwards)
		}
		if a.EarlyExitRange != nil {
			a.EarlyExitRange = floatPtr(*a.EarlyExitRange)
		}
		out.Attributes = &a
	}
	return out
}

// ValidatePath validates every waypoint and reports the first failing index.
func ValidatePath(path []Waypoint) error {
	for i, w := range path {
		if err := w.Validate(); err != nil {
			return &indexError{index: i, err: err}
		}
	}
	return nil
}

type indexError struct {
	index int
	err   error
}

func (e *indexError) Error() string {
	return "waypoint " + strconv.Itoa(e.index) + ": " + e.err.Error()
}

func (e *indexError) Unwrap() error { return e.err }

var errNotFinite = errors.New("must be a finite number")

func finite(value interface{}) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errNotFinite
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
