package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

const (
	poseCall = "chassis.setPose"
	moveCall = "chassis.moveToPoint"
)

// Serialize renders the path as motion-control code. Waypoint 0 becomes the
// pose statement, every later waypoint a move statement. The robot frame puts
// the lateral axis first, so y is emitted before x.
func Serialize(path []Waypoint) string {
	var b strings.Builder
	for i, w := range path {
		writeFragment(&b, w.CodeBefore)
		if i == 0 {
			radians := 0.0
			if w.Radians != nil {
				radians = *w.Radians
			}
			fmt.Fprintf(&b, "%s(%s, %s, %s);\n", poseCall, formatNumber(w.Y), formatNumber(w.X), formatNumber(radians))
		} else {
			fmt.Fprintf(&b, "%s(%s, %s, %s%s);\n", moveCall, formatNumber(w.Y), formatNumber(w.X), formatNumber(w.Timeout), attributeLiteral(w.Attributes))
		}
		writeFragment(&b, w.CodeAfter)
	}
	return b.String()
}

func writeFragment(b *strings.Builder, fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	b.WriteString(fragment)
	b.WriteString("\n")
}

// attributeLiteral renders ", { .name = value, ... }" or nothing.
func attributeLiteral(a *Attributes) string {
	if a.Empty() {
		return ""
	}
	parts := make([]string, 0, 4)
	if a.Forwards != nil {
		parts = append(parts, ".forwards = "+strconv.FormatBool(*a.Forwards))
	}
	if a.MaxSpeed != nil {
		parts = append(parts, ".maxSpeed = "+formatNumber(*a.MaxSpeed))
	}
	if a.MinSpeed != nil {
		parts = append(parts, ".minSpeed = "+formatNumber(*a.MinSpeed))
	}
	if a.EarlyExitRange != nil {
		parts = append(parts, ".earlyExitRange = "+formatNumber(*a.EarlyExitRange))
	}
	return ", { " + strings.Join(parts, ", ") + " }"
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type lineKind int

const (
	lineFree lineKind = iota
	linePose
	lineMove
)

func (k lineKind) String() string {
	switch k {
	case linePose:
		return "pose"
	case lineMove:
		return "move"
	default:
		return "free"
	}
}

// statement is one classified source line. args holds the numeric arguments
// in source order; attrs is the raw brace list of a move, if any.
type statement struct {
	kind  lineKind
	args  [3]float64
	attrs string
}

// Parse rebuilds a path from code. Lines that are neither pose nor move
// statements are kept as CodeBefore of the next statement, or CodeAfter of the
// last one. A malformed attribute list fails the whole parse.
func Parse(text string) ([]Waypoint, error) {
	var (
		path    []Waypoint
		pending []string
	)
	flush := func() string {
		fragment := strings.TrimSpace(strings.Join(pending, "\n"))
		pending = pending[:0]
		return fragment
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		stmt := classifyLine(line)
		switch stmt.kind {
		case linePose:
			radians := stmt.args[2]
			path = append(path, Waypoint{
				Y:          stmt.args[0],
				X:          stmt.args[1],
				Radians:    &radians,
				CodeBefore: flush(),
			})
		case lineMove:
			w := Waypoint{
				Y:          stmt.args[0],
				X:          stmt.args[1],
				Timeout:    stmt.args[2],
				CodeBefore: flush(),
			}
			if stmt.attrs != "" {
				attrs, err := parseAttributes(stmt.attrs)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Text: strings.TrimSpace(line), Reason: err.Error()}
				}
				w.Attributes = attrs
			}
			path = append(path, w)
		default:
			pending = append(pending, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read code: %w", err)
	}
	if trailing := flush(); trailing != "" && len(path) > 0 {
		path[len(path)-1].CodeAfter = trailing
	}
	return path, nil
}

// classifyLine recognizes `call(a, b, c)` and `call(a, b, c, { ... })` with
// an optional trailing semicolon. Anything else is free text.
func classifyLine(line string) statement {
	free := statement{kind: lineFree}
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return free
	}
	var kind lineKind
	switch strings.TrimSpace(s[:open]) {
	case poseCall:
		kind = linePose
	case moveCall:
		kind = lineMove
	default:
		return free
	}
	args, ok := splitArgs(s[open+1 : len(s)-1])
	if !ok {
		return free
	}

	stmt := statement{kind: kind}
	switch {
	case len(args) == 3:
	case len(args) == 4 && kind == lineMove && isBraceList(args[3]):
		stmt.attrs = args[3]
	default:
		return free
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return free
		}
		stmt.args[i] = v
	}
	return stmt
}

// splitArgs splits on commas outside braces. It fails on unbalanced braces or
// nested parentheses.
func splitArgs(s string) ([]string, bool) {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, false
			}
		case '(', ')':
			return nil, false
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args, true
}

func isBraceList(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

// parseAttributes reads `{ .name = value, ... }`.
func parseAttributes(list string) (*Attributes, error) {
	inner := strings.TrimSpace(list[1 : len(list)-1])
	attrs := &Attributes{}
	if inner == "" {
		return nil, nil
	}
	for _, entry := range strings.Split(inner, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.HasPrefix(entry, ".") {
			return nil, fmt.Errorf("attribute %q must start with '.'", entry)
		}
		name, raw, found := strings.Cut(entry[1:], "=")
		if !found {
			return nil, fmt.Errorf("attribute %q has no value", entry)
		}
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)

		var (
			boolVal  *bool
			floatVal *float64
		)
		switch raw {
		case "true", "false":
			b := raw == "true"
			boolVal = &b
		default:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %q is not a number or boolean", name, raw)
			}
			floatVal = &f
		}

		switch name {
		case "forwards":
			if boolVal == nil {
				return nil, fmt.Errorf("attribute %q must be true or false", name)
			}
			attrs.Forwards = boolVal
		case "maxSpeed", "minSpeed", "earlyExitRange":
			if floatVal == nil {
				return nil, fmt.Errorf("attribute %q must be a number", name)
			}
			switch name {
			case "maxSpeed":
				attrs.MaxSpeed = floatVal
			case "minSpeed":
				attrs.MinSpeed = floatVal
			default:
				attrs.EarlyExitRange = floatVal
			}
		default:
			return nil, fmt.Errorf("unknown attribute %q", name)
		}
	}
	if attrs.Empty() {
		return nil, nil
	}
	return attrs, nil
}
