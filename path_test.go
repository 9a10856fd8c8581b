package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathStoreAppendGet(t *testing.T) {
	s := NewPathStore()
	assert.Equal(t, 0, s.Append(Waypoint{X: 1, Y: 2}))
	assert.Equal(t, 1, s.Append(Waypoint{X: 3, Y: 4, Timeout: 500}))

	w, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, w.X)
	assert.Equal(t, 500.0, w.Timeout)
}

func TestPathStoreGetReturnsCopy(t *testing.T) {
	s := NewPathStore(Waypoint{Radians: floatPtr(1), Attributes: &Attributes{MaxSpeed: floatPtr(90)}})

	w, err := s.Get(0)
	require.NoError(t, err)
	*w.Radians = 5
	*w.Attributes.MaxSpeed = 10

	again, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *again.Radians)
	assert.Equal(t, 90.0, *again.Attributes.MaxSpeed)
}

func TestPathStoreOutOfRange(t *testing.T) {
	s := NewPathStore(Waypoint{X: 1}, Waypoint{X: 2})

	for _, index := range []int{-1, 2, 10} {
		_, err := s.RemoveAt(index)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.ErrorIs(t, s.Set(index, Patch{X: floatPtr(9)}), ErrOutOfRange)
		_, err = s.Get(index)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Waypoint{{X: 1}, {X: 2}}, s.Snapshot())
}

func TestPathStoreRemoveAtShifts(t *testing.T) {
	s := NewPathStore(Waypoint{X: 0}, Waypoint{X: 1}, Waypoint{X: 2})

	removed, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, removed.X)

	var xs []float64
	for i, w := range s.All() {
		assert.Equal(t, len(xs), i)
		xs = append(xs, w.X)
	}
	assert.Equal(t, []float64{0, 2}, xs)
}

func TestPatchAttributes(t *testing.T) {
	s := NewPathStore(Waypoint{})

	require.NoError(t, s.Set(0, Patch{MaxSpeed: floatPtr(90), Forwards: boolPtr(false)}))
	w, _ := s.Get(0)
	require.NotNil(t, w.Attributes)
	assert.Equal(t, 90.0, *w.Attributes.MaxSpeed)
	assert.False(t, *w.Attributes.Forwards)

	require.NoError(t, s.Set(0, Patch{Clear: []string{FieldMaxSpeed}}))
	w, _ = s.Get(0)
	require.NotNil(t, w.Attributes)
	assert.Nil(t, w.Attributes.MaxSpeed)

	require.NoError(t, s.Set(0, Patch{Clear: []string{FieldForwards}}))
	w, _ = s.Get(0)
	assert.Nil(t, w.Attributes, "empty attributes are dropped")
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath([]Waypoint{{X: 1, Y: 2, Timeout: 1000}}))

	err := ValidatePath([]Waypoint{{}, {X: math.NaN()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waypoint 1")

	err = ValidatePath([]Waypoint{{Timeout: -1}})
	assert.Error(t, err)

	err = ValidatePath([]Waypoint{{Attributes: &Attributes{MinSpeed: floatPtr(-5)}}})
	assert.Error(t, err)
}
