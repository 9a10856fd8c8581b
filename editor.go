package main

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	defaultMarkerRadius = 30.0
	defaultTimeout      = 1000.0
)

type EditorState int

const (
	StateIdle EditorState = iota
	StateDragging
)

func (s EditorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type EventKind int

const (
	EventAppended EventKind = iota
	EventMoved
	EventEdited
	EventDeleted
	EventLoaded
)

// EditorEvent is delivered to the listener after a mutation completes.
type EditorEvent struct {
	Kind   EventKind
	Index  int
	Marker *Marker
}

// PathEditor owns the path and its derived views. Every mutation goes through
// it, so the store, markers, connectors and form rows stay the same length
// and positional indices never go stale between steps.
type PathEditor struct {
	store      *PathStore
	translator *Translator
	markers    *MarkerLayer
	connectors *ConnectorGraph
	rows       *FormRows

	state     EditorState
	dragIndex int

	radius         float64
	defaultTimeout float64
	logger         *slog.Logger
	listener       func(EditorEvent)
}

type EditorOption func(*PathEditor)

func WithLogger(logger *slog.Logger) EditorOption {
	return func(e *PathEditor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMarkerRadius(radius float64) EditorOption {
	return func(e *PathEditor) {
		if radius > 0 {
			e.radius = radius
		}
	}
}

func WithDefaultTimeout(timeout float64) EditorOption {
	return func(e *PathEditor) {
		if timeout >= 0 {
			e.defaultTimeout = timeout
		}
	}
}

// WithListener registers a callback run after each completed mutation.
func WithListener(fn func(EditorEvent)) EditorOption {
	return func(e *PathEditor) {
		e.listener = fn
	}
}

func NewPathEditor(translator *Translator, opts ...EditorOption) *PathEditor {
	e := &PathEditor{
		store:          NewPathStore(),
		translator:     translator,
		rows:           NewFormRows(),
		dragIndex:      -1,
		radius:         defaultMarkerRadius,
		defaultTimeout: defaultTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.markers = NewMarkerLayer(translator, e.radius)
	e.connectors = NewConnectorGraph(e.markers)
	return e
}

func (e *PathEditor) State() (EditorState, int) {
	return e.state, e.dragIndex
}

func (e *PathEditor) Len() int { return e.store.Len() }
func (e *PathEditor) Waypoints() []Waypoint { return e.store.Snapshot() }
func (e *PathEditor) Markers() []*Marker { return e.markers.All() }
func (e *PathEditor) Connectors() []*Connector { return e.connectors.All() }
func (e *PathEditor) Rows() []*FormRow { return e.rows.All() }
func (e *PathEditor) Translator() *Translator { return e.translator }
func (e *PathEditor) Radius() float64 { return e.radius }

func (e *PathEditor) Waypoint(index int) (Waypoint, error) {
	return e.store.Get(index)
}

func (e *PathEditor) MarkerAt(px, py float64) *Marker {
	return e.markers.At(px, py)
}

// ClearFresh ends a marker's new-marker highlight.
func (e *PathEditor) ClearFresh(m *Marker) {
	e.markers.ClearFresh(m)
}

// Code renders the current path as motion-control code.
func (e *PathEditor) Code() string {
	return Serialize(e.store.Snapshot())
}

func (e *PathEditor) ShareLink(base, param string) (string, error) {
	return ShareURL(base, param, e.store.Snapshot())
}

// Press starts a drag when the press lands on a marker.
func (e *PathEditor) Press(px, py float64) {
	if e.state == StateDragging {
		return
	}
	m := e.markers.At(px, py)
	if m == nil {
		return
	}
	m.Dragging = true
	e.state = StateDragging
	e.dragIndex = m.Index
	e.logger.Debug("drag started", slog.Int("index", m.Index))
}

// Move drags the captured marker: the token follows the pointer, the store
// takes the new field coordinates, touching connectors and the form row are
// refreshed.
func (e *PathEditor) Move(px, py float64) error {
	if e.state != StateDragging {
		return nil
	}
	index := e.dragIndex
	if err := e.markers.Place(index, px-e.radius/2, py-e.radius/2); err != nil {
		return e.fault("drag", err)
	}
	x, y := e.translator.ToFieldCoords(px, py)
	if err := e.store.Set(index, Patch{X: &x, Y: &y}); err != nil {
		return e.fault("drag", err)
	}
	e.connectors.Reposition(index)
	w, _ := e.store.Get(index)
	if err := e.rows.Patch(index, w, FieldX, FieldY); err != nil {
		return e.fault("drag", err)
	}
	e.notify(EditorEvent{Kind: EventMoved, Index: index})
	return nil
}

// Release ends a drag. Outside a drag, a release on empty field appends a
// waypoint there. The returned marker is non-nil when one was appended.
func (e *PathEditor) Release(px, py float64) (*Marker, error) {
	if e.state == StateDragging {
		if m, err := e.markers.Get(e.dragIndex); err == nil {
			m.Dragging = false
		}
		e.logger.Debug("drag finished", slog.Int("index", e.dragIndex))
		e.state = StateIdle
		e.dragIndex = -1
		return nil, nil
	}
	if e.markers.At(px, py) != nil {
		return nil, nil
	}
	x, y := e.translator.ToFieldCoords(px-e.radius/2, py-e.radius/2)
	return e.Append(Waypoint{X: x, Y: y, Timeout: e.defaultTimeout})
}

// Append adds a waypoint at the end of the path.
func (e *PathEditor) Append(w Waypoint) (*Marker, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("append waypoint: %w", err)
	}
	index := e.store.Append(w)
	prev := e.markers.Last()
	m := e.markers.Add(w.X, w.Y)
	e.connectors.Append(prev, m)
	e.rows.Append(w)
	if err := e.verify(); err != nil {
		return nil, e.fault("append", err)
	}
	e.logger.Debug("waypoint appended", slog.Int("index", index), slog.Float64("x", w.X), slog.Float64("y", w.Y))
	e.notify(EditorEvent{Kind: EventAppended, Index: index, Marker: m})
	return m, nil
}

// Delete removes the waypoint at index from the store, markers, connectors
// and form rows. An out-of-range index changes nothing.
func (e *PathEditor) Delete(index int) error {
	lenBefore := e.store.Len()
	if _, err := e.store.RemoveAt(index); err != nil {
		e.logger.Warn("delete skipped", slog.Int("index", index), slog.String("error", err.Error()))
		return err
	}
	if e.state == StateDragging {
		switch {
		case e.dragIndex == index:
			e.state = StateIdle
			e.dragIndex = -1
		case e.dragIndex > index:
			e.dragIndex--
		}
	}
	var errs []error
	if _, err := e.markers.Remove(index); err != nil {
		errs = append(errs, err)
	}
	if err := e.connectors.Remove(index, lenBefore); err != nil {
		errs = append(errs, err)
	}
	if err := e.rows.Remove(index); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return e.fault("delete", err)
	}
	if err := e.verify(); err != nil {
		return e.fault("delete", err)
	}
	e.logger.Debug("waypoint deleted", slog.Int("index", index))
	e.notify(EditorEvent{Kind: EventDeleted, Index: index})
	return nil
}

// EditField writes typed form input into the waypoint at index.
func (e *PathEditor) EditField(index int, field, value string) error {
	patch, err := fieldPatch(field, value)
	if err != nil {
		return err
	}
	w, err := e.store.Get(index)
	if err != nil {
		e.logger.Warn("edit skipped", slog.Int("index", index), slog.String("field", field), slog.String("error", err.Error()))
		return err
	}
	patch.apply(&w)
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if err := e.store.Set(index, patch); err != nil {
		return err
	}
	if patch.touchesPosition() {
		if err := e.markers.Reposition(index, w.X, w.Y); err != nil {
			return e.fault("edit", err)
		}
		e.connectors.Reposition(index)
	}
	if err := e.rows.Patch(index, w, field); err != nil {
		return e.fault("edit", err)
	}
	e.notify(EditorEvent{Kind: EventEdited, Index: index})
	return nil
}

// Nudge shifts the waypoint at index by whole viewport pixels, with the same
// side effects as a drag.
func (e *PathEditor) Nudge(index int, dx, dy float64) error {
	w, err := e.store.Get(index)
	if err != nil {
		return err
	}
	px, py := e.translator.FromFieldCoords(w.X, w.Y)
	x, y := e.translator.ToFieldCoords(px+dx, py+dy)
	if err := e.store.Set(index, Patch{X: &x, Y: &y}); err != nil {
		return err
	}
	if err := e.markers.Reposition(index, x, y); err != nil {
		return e.fault("nudge", err)
	}
	e.connectors.Reposition(index)
	w.X, w.Y = x, y
	if err := e.rows.Patch(index, w, FieldX, FieldY); err != nil {
		return e.fault("nudge", err)
	}
	e.notify(EditorEvent{Kind: EventMoved, Index: index})
	return nil
}

// Load replaces the whole path and regenerates every derived view.
func (e *PathEditor) Load(path []Waypoint) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("load path: %w", err)
	}
	e.store.Replace(path)
	e.state = StateIdle
	e.dragIndex = -1
	e.rebuild()
	e.logger.Info("path loaded", slog.Int("waypoints", e.store.Len()))
	e.notify(EditorEvent{Kind: EventLoaded, Index: -1})
	return nil
}

// Import parses code and loads the result. A parse failure leaves the
// current path untouched.
func (e *PathEditor) Import(code string) error {
	path, err := Parse(code)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return e.Load(path)
}

// Resize rescales the viewport and re-derives marker and connector geometry.
func (e *PathEditor) Resize(width, height float64) {
	e.translator.Resize(width, height)
	for i, w := range e.store.All() {
		if err := e.markers.Reposition(i, w.X, w.Y); err != nil {
			_ = e.fault("resize", err)
			return
		}
	}
	e.connectors.Rebuild()
}

// verify checks that every derived view matches the store.
func (e *PathEditor) verify() error {
	n := e.store.Len()
	if e.markers.Len() != n || e.rows.Len() != n {
		return fmt.Errorf("path has %d waypoints, %d markers, %d rows: %w", n, e.markers.Len(), e.rows.Len(), ErrMissingElement)
	}
	for i, m := range e.markers.All() {
		if m.Index != i {
			return fmt.Errorf("marker at %d tagged %d: %w", i, m.Index, ErrMissingElement)
		}
	}
	for i, r := range e.rows.All() {
		if r.Index != i {
			return fmt.Errorf("form row at %d tagged %d: %w", i, r.Index, ErrMissingElement)
		}
	}
	return e.connectors.Check()
}

// fault logs a desynchronized view and rebuilds every view from the store so
// the counts agree again.
func (e *PathEditor) fault(op string, err error) error {
	e.logger.Error("path views out of sync, rebuilding",
		slog.String("op", op),
		slog.String("error", err.Error()))
	e.rebuild()
	return fmt.Errorf("%s: %w", op, err)
}

func (e *PathEditor) rebuild() {
	path := e.store.Snapshot()
	e.markers.Rebuild(path)
	e.connectors.Rebuild()
	e.rows.Regenerate(path)
	if e.state == StateDragging {
		if m, err := e.markers.Get(e.dragIndex); err == nil {
			m.Dragging = true
		}
	}
}

func (e *PathEditor) notify(ev EditorEvent) {
	if e.listener != nil {
		e.listener(ev)
	}
}
