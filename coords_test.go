package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorOrigin(t *testing.T) {
	tr := NewTranslator(1000, 1000)

	px, py := tr.FromFieldCoords(0, 0)
	assert.Equal(t, 500.0, px)
	assert.Equal(t, 500.0, py)

	px, py = tr.FromFieldCoords(72, 72)
	assert.InDelta(t, 1000.0, px, 1e-9)
	assert.InDelta(t, 0.0, py, 1e-9)

	x, y := tr.ToFieldCoords(0, 1000)
	assert.Equal(t, -72.0, x)
	assert.Equal(t, -72.0, y)
}

func TestTranslatorRoundTrip(t *testing.T) {
	viewports := [][2]float64{{1000, 1000}, {640, 480}, {96, 48}}
	points := [][2]float64{{0, 0}, {12.34, -56.78}, {-72, 72}, {71.99, -0.01}, {-55, 16.5}}

	for _, vp := range viewports {
		tr := NewTranslator(vp[0], vp[1])
		for _, p := range points {
			px, py := tr.FromFieldCoords(p[0], p[1])
			x, y := tr.ToFieldCoords(px, py)
			assert.InDelta(t, p[0], x, 0.01, "x for %v in %v", p, vp)
			assert.InDelta(t, p[1], y, 0.01, "y for %v in %v", p, vp)
		}
	}
}

func TestTranslatorFieldSize(t *testing.T) {
	tr := NewTranslator(200, 100, WithFieldSize(200, 100))

	px, py := tr.FromFieldCoords(0, 0)
	assert.Equal(t, 100.0, px)
	assert.Equal(t, 50.0, py)

	w, h := tr.FieldSize()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
}

func TestTranslatorResize(t *testing.T) {
	tr := NewTranslator(0, 0)

	x, y := tr.ToFieldCoords(10, 10)
	assert.Equal(t, 0.0, x, "zero viewport maps to origin")
	assert.Equal(t, 0.0, y)

	tr.Resize(144, 144)
	x, y = tr.ToFieldCoords(82, 62)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
}
