package main

import (
	"fmt"
	"math"
	"strconv"
)

// Marker is the on-field token for one waypoint. Left/Top is the token's
// top-left corner in viewport pixels.
type Marker struct {
	Index    int
	Label    string
	Left     float64
	Top      float64
	Fresh    bool
	Dragging bool
}

// MarkerLayer holds one marker per waypoint, indexed by path position.
type MarkerLayer struct {
	markers    []*Marker
	translator *Translator
	radius     float64
}

func NewMarkerLayer(translator *Translator, radius float64) *MarkerLayer {
	return &MarkerLayer{
		markers:    make([]*Marker, 0),
		translator: translator,
		radius:     radius,
	}
}

func (l *MarkerLayer) Len() int {
	return len(l.markers)
}

func (l *MarkerLayer) Radius() float64 {
	return l.radius
}

func (l *MarkerLayer) Get(index int) (*Marker, error) {
	if index < 0 || index >= len(l.markers) {
		return nil, fmt.Errorf("marker %d: %w", index, ErrMissingElement)
	}
	return l.markers[index], nil
}

func (l *MarkerLayer) Last() *Marker {
	if len(l.markers) == 0 {
		return nil
	}
	return l.markers[len(l.markers)-1]
}

// Add creates a fresh marker for a waypoint appended at the end of the path.
func (l *MarkerLayer) Add(x, y float64) *Marker {
	index := len(l.markers)
	m := &Marker{
		Index: index,
		Label: strconv.Itoa(index),
		Fresh: true,
	}
	l.placeAtField(m, x, y)
	l.markers = append(l.markers, m)
	return m
}

// ClearFresh ends the transient highlight. The marker may already be gone.
func (l *MarkerLayer) ClearFresh(m *Marker) {
	if m != nil {
		m.Fresh = false
	}
}

// Remove drops the marker at index and relabels every marker above it.
func (l *MarkerLayer) Remove(index int) (*Marker, error) {
	if index < 0 || index >= len(l.markers) {
		return nil, fmt.Errorf("marker %d: %w", index, ErrMissingElement)
	}
	removed := l.markers[index]
	l.markers = append(l.markers[:index], l.markers[index+1:]...)
	for i := index; i < len(l.markers); i++ {
		l.markers[i].Index = i
		l.markers[i].Label = strconv.Itoa(i)
	}
	return removed, nil
}

// Place sets a marker's top-left corner directly, as a drag does.
func (l *MarkerLayer) Place(index int, left, top float64) error {
	m, err := l.Get(index)
	if err != nil {
		return err
	}
	m.Left = left
	m.Top = top
	return nil
}

// Reposition moves a marker so its center sits on the given field point.
func (l *MarkerLayer) Reposition(index int, x, y float64) error {
	m, err := l.Get(index)
	if err != nil {
		return err
	}
	l.placeAtField(m, x, y)
	return nil
}

// Rebuild recreates every marker from the path. Rebuilt markers are not fresh.
func (l *MarkerLayer) Rebuild(path []Waypoint) {
	l.markers = make([]*Marker, 0, len(path))
	for i, w := range path {
		m := &Marker{Index: i, Label: strconv.Itoa(i)}
		l.placeAtField(m, w.X, w.Y)
		l.markers = append(l.markers, m)
	}
}

func (l *MarkerLayer) Center(m *Marker) (float64, float64) {
	return m.Left + l.radius/2, m.Top + l.radius/2
}

// At returns the marker whose token covers the pixel, or nil. Later markers
// are drawn on top, so they win.
func (l *MarkerLayer) At(px, py float64) *Marker {
	for i := len(l.markers) - 1; i >= 0; i-- {
		cx, cy := l.Center(l.markers[i])
		if math.Hypot(px-cx, py-cy) <= l.radius/2 {
			return l.markers[i]
		}
	}
	return nil
}

func (l *MarkerLayer) All() []*Marker {
	return l.markers
}

func (l *MarkerLayer) placeAtField(m *Marker, x, y float64) {
	px, py := l.translator.FromFieldCoords(x, y)
	m.Left = px - l.radius/2
	m.Top = py - l.radius/2
}
