package state_test

import (
	. "github.com/LanMao8866/hexjump/internal/state"
	. "github.com/LanMao8866/hexjump/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// boardWithTeamsAtTarget returns a board where the given teams have all their pieces in
// their target regions.
func boardWithTeamsAtTarget(teams ...Team) *Board {
	var layout []PieceOnBoard
	for _, team := range teams {
		for _, pos := range TargetRegion(team) {
			layout = append(layout, PieceOnBoard{pos, team})
		}
	}
	return BuildBoard(layout)
}

func TestTargetRegions(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []Pos{{-2, 2}, {0, 2}, {2, 2}, {-1, 3}, {1, 3}, {0, 4}}, TargetRegion(Red))
	for _, team := range Teams {
		region := TargetRegion(team)
		assert.Len(t, region, 6)
		for _, pos := range region {
			kind := b.CellAt(pos).Kind()
			assert.True(t, kind == Occupied || kind == EmptySlot, "Target %s of %s is a %s", pos, team, b.CellAt(pos))
			assert.True(t, InTargetRegion(pos, team))
		}
	}
	assert.Nil(t, TargetRegion(TeamInvalid))
	assert.False(t, InTargetRegion(Pos{0, 4}, TeamInvalid))
	assert.False(t, InTargetRegion(Pos{0, 4}, Blue))
}

func TestCheckWin(t *testing.T) {
	b := NewBoard()
	_, won := b.CheckWin()
	assert.False(t, won)
	assert.False(t, b.IsFinished())
	assert.Equal(t, TeamInvalid, b.Winner())

	// An empty board has no winner: a team needs at least one piece.
	_, won = EmptyBoard().CheckWin()
	assert.False(t, won)

	for _, team := range Teams {
		winner, won := boardWithTeamsAtTarget(team).CheckWin()
		assert.True(t, won)
		assert.Equal(t, team, winner)
	}

	// Several winners: the first in playing order is returned.
	winner, _ := boardWithTeamsAtTarget(Green, Red, Blue).CheckWin()
	assert.Equal(t, Red, winner)
	winner, _ = boardWithTeamsAtTarget(Green, Blue).CheckWin()
	assert.Equal(t, Blue, winner)

	// A single piece outside the target region is enough to not win.
	b = boardWithTeamsAtTarget(Blue)
	require.NoError(t, b.PlacePiece(Pos{0, 0}, Blue))
	assert.False(t, b.IsFinished())
}

func TestWinningMove(t *testing.T) {
	// Red is one step away from filling its target region.
	b := BuildBoard([]PieceOnBoard{
		{Pos{0, 4}, Red},
		{Pos{-1, 3}, Red},
		{Pos{1, 3}, Red},
		{Pos{-2, 2}, Red},
		{Pos{2, 2}, Red},
		{Pos{-1, 1}, Red},
		{Pos{4, 0}, Blue},
	})
	require.False(t, b.IsFinished())
	require.NoError(t, b.Move(Pos{-1, 1}, Pos{0, 2}))
	assert.Equal(t, Red, b.Winner())
	assert.Equal(t, Blue, b.CurrentPlayer(), "Turn still passes, CheckWin doesn't change the board")
}
