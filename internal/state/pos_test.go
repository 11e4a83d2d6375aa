package state_test

import (
	. "github.com/LanMao8866/hexjump/internal/state"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPos(t *testing.T) {
	a, b := Pos{2, -1}, Pos{-1, 3}
	assert.Equal(t, Pos{1, 2}, a.Add(b))
	assert.Equal(t, Pos{3, -4}, a.Sub(b))
	assert.Equal(t, 4, a.Distance(b))
	assert.Equal(t, 4, b.Distance(a))
	assert.Equal(t, 0, a.Distance(a))
	assert.Equal(t, "(2, -1)", a.String())
	assert.Equal(t, int8(2), a.Q())
	assert.Equal(t, int8(-1), a.R())

	assert.True(t, IsValidPosition(Pos{0, -4}))
	assert.True(t, IsValidPosition(Pos{-6, 0}))
	assert.False(t, IsValidPosition(Pos{6, 2}), "Green corner tip is outside the hexagon")
	assert.False(t, IsValidPosition(Pos{0, 7}))

	positions := []Pos{{1, 1}, {-3, 1}, {5, -2}, {0, -4}}
	SortPositions(positions)
	assert.Equal(t, []Pos{{0, -4}, {5, -2}, {-3, 1}, {1, 1}}, positions)
	assert.Equal(t, []string{"(0, -4)", "(5, -2)", "(-3, 1)", "(1, 1)"}, PosStrings(positions))
}

func TestIsValidConnection(t *testing.T) {
	from := Pos{1, -1}
	for _, delta := range StepDirections {
		assert.Equal(t, 1, Pos{}.Distance(delta))
		assert.True(t, IsValidConnection(from, from.Add(delta)), "Delta %s", delta)
	}
	for _, delta := range ExtendedDirections {
		assert.Equal(t, 2, Pos{}.Distance(delta))
		assert.True(t, IsValidConnection(from, from.Add(delta)), "Delta %s", delta)
	}
	assert.Len(t, Connections, 14)
	for _, delta := range []Pos{{0, 0}, {0, 2}, {0, -2}, {2, -2}, {-2, 2}, {3, 0}, {2, 1}} {
		assert.False(t, IsValidConnection(from, from.Add(delta)), "Delta %s", delta)
	}
}

func TestNeighbours(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []Pos{{-1, -3}, {1, -3}}, b.OccupiedNeighbours(Pos{0, -4}))
	assert.Empty(t, b.EmptyNeighbours(Pos{0, -4}), "Tip of the Red corner is blocked")
	assert.ElementsMatch(t, []Pos{{-1, -1}, {1, -1}}, b.EmptyNeighbours(Pos{0, -2}))
	var count int
	for pos := range b.ConnectedNeighboursIter(Pos{0, -4}) {
		assert.True(t, b.Exists(pos))
		count++
	}
	assert.Equal(t, 4, count) // Two pieces and two decorative slots.
}
