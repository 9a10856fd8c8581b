package main

import "fmt"

// Connector is the derived edge between two adjacent markers. The cached
// endpoints are marker centers in viewport pixels.
type Connector struct {
	From  *Marker
	To    *Marker
	FromX float64
	FromY float64
	ToX   float64
	ToY   float64
}

// ConnectorGraph keeps connectors[i] joining marker i to marker i+1.
type ConnectorGraph struct {
	connectors []*Connector
	markers    *MarkerLayer
}

func NewConnectorGraph(markers *MarkerLayer) *ConnectorGraph {
	return &ConnectorGraph{
		connectors: make([]*Connector, 0),
		markers:    markers,
	}
}

func (g *ConnectorGraph) Len() int {
	return len(g.connectors)
}

func (g *ConnectorGraph) All() []*Connector {
	return g.connectors
}

func (g *ConnectorGraph) Get(index int) (*Connector, error) {
	if index < 0 || index >= len(g.connectors) {
		return nil, fmt.Errorf("connector %d: %w", index, ErrMissingElement)
	}
	return g.connectors[index], nil
}

// Append joins the previous last marker to a newly added one. prev is nil
// when the new marker is the first.
func (g *ConnectorGraph) Append(prev, next *Marker) {
	if prev == nil || next == nil {
		return
	}
	c := &Connector{From: prev, To: next}
	g.position(c)
	g.connectors = append(g.connectors, c)
}

// Remove repairs the graph after the waypoint at index was removed from a
// path of lenBefore entries. The marker layer must already be relabeled.
//
// Removing the start drops the connector leaving it, removing the end drops
// the one arriving at it. An interior removal drops the connector leaving the
// removed node and re-points the arriving one at the node that shifted down
// into its place.
func (g *ConnectorGraph) Remove(index, lenBefore int) error {
	if lenBefore <= 1 {
		return nil
	}
	switch {
	case index == 0:
		g.drop(0)
	case index == lenBefore-1:
		g.drop(len(g.connectors) - 1)
	default:
		if index >= len(g.connectors) {
			return fmt.Errorf("connector %d: %w", index, ErrMissingElement)
		}
		g.drop(index)
		arriving, err := g.Get(index - 1)
		if err != nil {
			return err
		}
		next, err := g.markers.Get(index)
		if err != nil {
			return err
		}
		arriving.To = next
		g.position(arriving)
	}
	return nil
}

// Reposition recomputes the connectors touching the marker at index: one for
// an endpoint, two for an interior node.
func (g *ConnectorGraph) Reposition(index int) {
	if index > 0 && index-1 < len(g.connectors) {
		g.position(g.connectors[index-1])
	}
	if index >= 0 && index < len(g.connectors) {
		g.position(g.connectors[index])
	}
}

// Rebuild derives every connector from the marker layer.
func (g *ConnectorGraph) Rebuild() {
	markers := g.markers.All()
	g.connectors = make([]*Connector, 0, max(0, len(markers)-1))
	for i := 1; i < len(markers); i++ {
		c := &Connector{From: markers[i-1], To: markers[i]}
		g.position(c)
		g.connectors = append(g.connectors, c)
	}
}

// Check verifies the structural invariant against the marker layer.
func (g *ConnectorGraph) Check() error {
	markers := g.markers.All()
	want := max(0, len(markers)-1)
	if len(g.connectors) != want {
		return fmt.Errorf("have %d connectors for %d markers: %w", len(g.connectors), len(markers), ErrMissingElement)
	}
	for i, c := range g.connectors {
		if c.From != markers[i] || c.To != markers[i+1] {
			return fmt.Errorf("connector %d does not join markers %d and %d: %w", i, i, i+1, ErrMissingElement)
		}
	}
	return nil
}

func (g *ConnectorGraph) drop(index int) {
	if index < 0 || index >= len(g.connectors) {
		return
	}
	g.connectors = append(g.connectors[:index], g.connectors[index+1:]...)
}

func (g *ConnectorGraph) position(c *Connector) {
	c.FromX, c.FromY = g.markers.Center(c.From)
	c.ToX, c.ToY = g.markers.Center(c.To)
}
