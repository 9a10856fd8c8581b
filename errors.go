package main

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange     = errors.New("index out of range")
	ErrMissingElement = errors.New("missing element")
	ErrUnknownField   = errors.New("unknown field")
	ErrShareVersion   = errors.New("unsupported share payload version")
)

// ParseError reports a statement the importer could not accept. Any ParseError
// abandons the whole import.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}
