package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
)

type model struct {
	width          int
	height         int
	fieldCols      int
	fieldRows      int
	editor         *PathEditor
	events         *eventQueue
	config         *Config
	logger         *slog.Logger
	keys           keyMap
	mode           Mode
	help           bool
	selectedRow    int
	selectedField  int
	input          textinput.Model
	filename       string
	fileOp         FileOperation
	codeFile       string
	confirmAction  ConfirmAction
	confirmIndex   int
	errorMessage   string
	successMessage string
	messageSeq     int
}

// eventQueue collects editor events between updates so the model can turn
// them into commands.
type eventQueue struct {
	pending []EditorEvent
}

func (q *eventQueue) push(ev EditorEvent) {
	q.pending = append(q.pending, ev)
}

func (q *eventQueue) drain() []EditorEvent {
	out := q.pending
	q.pending = nil
	return out
}

// freshExpiredMsg ends a new marker's highlight.
type freshExpiredMsg struct {
	marker *Marker
}

// codeChangedMsg carries the contents of the watched code file.
type codeChangedMsg struct {
	code string
}

// clearMessageMsg clears the status message if nothing newer replaced it.
type clearMessageMsg struct {
	seq int
}
