package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cellStyle int

const (
	cellPlain cellStyle = iota
	cellGrid
	cellConnector
	cellMarker
	cellFresh
	cellDragging
	cellSelected
)

// fieldGrid is the terminal rendering of the field: one rune and one style
// per cell, one cell per viewport pixel.
type fieldGrid struct {
	runes  [][]rune
	styles [][]cellStyle
}

func newFieldGrid(width, height int) *fieldGrid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &fieldGrid{
		runes:  make([][]rune, height),
		styles: make([][]cellStyle, height),
	}
	for y := range g.runes {
		g.runes[y] = make([]rune, width)
		g.styles[y] = make([]cellStyle, width)
		for x := range g.runes[y] {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *fieldGrid) isValidPos(x, y int) bool {
	return y >= 0 && y < len(g.runes) && x >= 0 && x < len(g.runes[y])
}

func (g *fieldGrid) set(x, y int, r rune, style cellStyle) {
	if g.isValidPos(x, y) {
		g.runes[y][x] = r
		g.styles[y][x] = style
	}
}

// renderField draws tile lines, connectors and markers for the editor's
// current state. selected is the index of the form row in focus, or -1.
func renderField(e *PathEditor, width, height int, selected int) []string {
	g := newFieldGrid(width, height)
	drawTiles(g, e.Translator())

	for _, c := range e.Connectors() {
		drawConnector(g, c)
	}

	for _, m := range e.Markers() {
		style := cellMarker
		switch {
		case m.Dragging:
			style = cellDragging
		case m.Index == selected:
			style = cellSelected
		case m.Fresh:
			style = cellFresh
		}
		cx, cy := e.markers.Center(m)
		drawLabel(g, int(math.Floor(cx)), int(math.Floor(cy)), m.Label, style)
	}

	return g.lines()
}

// drawTiles marks the six-tile field layout every 24 field units.
func drawTiles(g *fieldGrid, t *Translator) {
	fw, fh := t.FieldSize()
	const tile = 24.0
	for x := -fw / 2; x <= fw/2; x += tile {
		px, _ := t.FromFieldCoords(x, 0)
		col := int(math.Floor(px))
		for y := range g.runes {
			g.set(col, y, '┊', cellGrid)
		}
	}
	for y := -fh / 2; y <= fh/2; y += tile {
		_, py := t.FromFieldCoords(0, y)
		row := int(math.Floor(py))
		for x := range g.runes[0] {
			if g.isValidPos(x, row) && g.runes[row][x] == '┊' {
				g.set(x, row, '┼', cellGrid)
			} else {
				g.set(x, row, '┈', cellGrid)
			}
		}
	}
}

// drawConnector rasterizes a connector between marker centers.
func drawConnector(g *fieldGrid, c *Connector) {
	x0, y0 := int(math.Floor(c.FromX)), int(math.Floor(c.FromY))
	x1, y1 := int(math.Floor(c.ToX)), int(math.Floor(c.ToY))
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	ch := lineRune(x1-x0, y1-y0)
	err := dx + dy
	for {
		g.set(x0, y0, ch, cellConnector)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func drawLabel(g *fieldGrid, cx, cy int, label string, style cellStyle) {
	text := "(" + label + ")"
	start := cx - len(text)/2
	for i, r := range text {
		g.set(start+i, cy, r, style)
	}
}

func (g *fieldGrid) lines() []string {
	out := make([]string, len(g.runes))
	for y, row := range g.runes {
		var b strings.Builder
		runStart := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && g.styles[y][x] == g.styles[y][runStart] {
				continue
			}
			b.WriteString(styleFor(g.styles[y][runStart]).Render(string(row[runStart:x])))
			runStart = x
		}
		out[y] = b.String()
	}
	return out
}

func styleFor(s cellStyle) lipgloss.Style {
	switch s {
	case cellGrid:
		return styleGrid
	case cellConnector:
		return styleConnector
	case cellMarker:
		return styleMarker
	case cellFresh:
		return styleFresh
	case cellDragging:
		return styleDragging
	case cellSelected:
		return styleSelected
	default:
		return lipgloss.NewStyle()
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
