package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerLayerPlacement(t *testing.T) {
	l := NewMarkerLayer(NewTranslator(1000, 1000), 30)

	m := l.Add(0, 0)
	assert.Equal(t, 485.0, m.Left)
	assert.Equal(t, 485.0, m.Top)
	assert.Equal(t, "0", m.Label)
	assert.True(t, m.Fresh)

	cx, cy := l.Center(m)
	assert.Equal(t, 500.0, cx)
	assert.Equal(t, 500.0, cy)

	l.ClearFresh(m)
	assert.False(t, m.Fresh)
	l.ClearFresh(nil)
}

func TestMarkerLayerHitTest(t *testing.T) {
	l := NewMarkerLayer(NewTranslator(1000, 1000), 30)
	first := l.Add(0, 0)
	second := l.Add(1, 0)

	assert.Same(t, second, l.At(500, 500), "later markers are on top")
	assert.Same(t, first, l.At(488, 500))
	assert.Nil(t, l.At(600, 600))
	assert.Nil(t, l.At(500, 516))
}

func TestMarkerLayerRemoveRelabels(t *testing.T) {
	l := NewMarkerLayer(NewTranslator(1000, 1000), 30)
	for i := 0; i < 4; i++ {
		l.Add(float64(i*10), 0)
	}

	removed, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "1", removed.Label)

	for i, m := range l.All() {
		assert.Equal(t, i, m.Index)
		assert.Equal(t, []string{"0", "1", "2"}[i], m.Label)
	}

	_, err = l.Remove(3)
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.Equal(t, 3, l.Len())
}

func TestMarkerLayerRebuild(t *testing.T) {
	l := NewMarkerLayer(NewTranslator(144, 144), 2)
	l.Add(5, 5)

	l.Rebuild([]Waypoint{{X: 0, Y: 0}, {X: 10, Y: -10}})
	require.Equal(t, 2, l.Len())
	m, err := l.Get(1)
	require.NoError(t, err)
	assert.False(t, m.Fresh)
	cx, cy := l.Center(m)
	assert.Equal(t, 82.0, cx)
	assert.Equal(t, 82.0, cy)
}
