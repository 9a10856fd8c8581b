package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Form field names, shared by the row collaborator and field-level edits.
const (
	FieldX              = "x"
	FieldY              = "y"
	FieldTimeout        = "timeout"
	FieldRadians        = "radians"
	FieldMaxSpeed       = "attributes.maxSpeed"
	FieldMinSpeed       = "attributes.minSpeed"
	FieldEarlyExitRange = "attributes.earlyExitRange"
	FieldForwards       = "attributes.forwards"
	FieldCodeBefore     = "codeBefore"
	FieldCodeAfter      = "codeAfter"
)

// FormFields is the display order of a row's editable fields.
var FormFields = []string{
	FieldX,
	FieldY,
	FieldTimeout,
	FieldRadians,
	FieldMaxSpeed,
	FieldMinSpeed,
	FieldEarlyExitRange,
	FieldForwards,
	FieldCodeBefore,
	FieldCodeAfter,
}

// FormRow is the editable view of one waypoint.
type FormRow struct {
	Index  int
	Values map[string]string
}

// FormRows mirrors the path one row per waypoint.
type FormRows struct {
	rows []*FormRow
}

func NewFormRows() *FormRows {
	return &FormRows{rows: make([]*FormRow, 0)}
}

func (r *FormRows) Len() int {
	return len(r.rows)
}

func (r *FormRows) All() []*FormRow {
	return r.rows
}

func (r *FormRows) Row(index int) (*FormRow, error) {
	if index < 0 || index >= len(r.rows) {
		return nil, fmt.Errorf("form row %d: %w", index, ErrMissingElement)
	}
	return r.rows[index], nil
}

// Regenerate rebuilds every row from the path.
func (r *FormRows) Regenerate(path []Waypoint) {
	r.rows = make([]*FormRow, 0, len(path))
	for _, w := range path {
		r.Append(w)
	}
}

func (r *FormRows) Append(w Waypoint) *FormRow {
	row := &FormRow{Index: len(r.rows), Values: make(map[string]string, len(FormFields))}
	for _, field := range FormFields {
		row.Values[field] = formatField(w, field)
	}
	r.rows = append(r.rows, row)
	return row
}

// Patch rewrites the given fields of a single row from w, leaving other rows
// alone.
func (r *FormRows) Patch(index int, w Waypoint, fields ...string) error {
	row, err := r.Row(index)
	if err != nil {
		return err
	}
	for _, field := range fields {
		row.Values[field] = formatField(w, field)
	}
	return nil
}

// Remove drops a row and renumbers the rows above it.
func (r *FormRows) Remove(index int) error {
	if _, err := r.Row(index); err != nil {
		return err
	}
	r.rows = append(r.rows[:index], r.rows[index+1:]...)
	for i := index; i < len(r.rows); i++ {
		r.rows[i].Index = i
	}
	return nil
}

func formatField(w Waypoint, field string) string {
	optFloat := func(v *float64) string {
		if v == nil {
			return ""
		}
		return formatNumber(*v)
	}
	attrs := w.Attributes
	if attrs == nil {
		attrs = &Attributes{}
	}
	switch field {
	case FieldX:
		return formatNumber(w.X)
	case FieldY:
		return formatNumber(w.Y)
	case FieldTimeout:
		return formatNumber(w.Timeout)
	case FieldRadians:
		return optFloat(w.Radians)
	case FieldMaxSpeed:
		return optFloat(attrs.MaxSpeed)
	case FieldMinSpeed:
		return optFloat(attrs.MinSpeed)
	case FieldEarlyExitRange:
		return optFloat(attrs.EarlyExitRange)
	case FieldForwards:
		if attrs.Forwards == nil {
			return ""
		}
		return strconv.FormatBool(*attrs.Forwards)
	case FieldCodeBefore:
		return w.CodeBefore
	case FieldCodeAfter:
		return w.CodeAfter
	}
	return ""
}

// fieldPatch converts typed form input into a Patch. Empty input clears an
// optional field; required numeric fields reject it.
func fieldPatch(field, value string) (Patch, error) {
	trimmed := strings.TrimSpace(value)
	number := func() (*float64, error) {
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", field, value)
		}
		return &v, nil
	}

	var p Patch
	var err error
	switch field {
	case FieldX, FieldY, FieldTimeout:
		var v *float64
		if v, err = number(); err != nil {
			return p, err
		}
		switch field {
		case FieldX:
			p.X = v
		case FieldY:
			p.Y = v
		default:
			p.Timeout = v
		}
	case FieldRadians, FieldMaxSpeed, FieldMinSpeed, FieldEarlyExitRange:
		if trimmed == "" {
			p.Clear = []string{field}
			return p, nil
		}
		var v *float64
		if v, err = number(); err != nil {
			return p, err
		}
		switch field {
		case FieldRadians:
			p.Radians = v
		case FieldMaxSpeed:
			p.MaxSpeed = v
		case FieldMinSpeed:
			p.MinSpeed = v
		default:
			p.EarlyExitRange = v
		}
	case FieldForwards:
		if trimmed == "" {
			p.Clear = []string{field}
			return p, nil
		}
		b, perr := strconv.ParseBool(trimmed)
		if perr != nil {
			return p, fmt.Errorf("%s: %q is not true or false", field, value)
		}
		p.Forwards = &b
	case FieldCodeBefore:
		p.CodeBefore = &value
	case FieldCodeAfter:
		p.CodeAfter = &value
	default:
		return p, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return p, nil
}
