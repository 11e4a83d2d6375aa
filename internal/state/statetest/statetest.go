// Package statetest provides helper functions to create tests using the board state.
package statetest

import (
	"fmt"
	. "github.com/LanMao8866/hexjump/internal/state"
	"github.com/pkg/errors"
)

// PieceOnBoard represents a position and ownership of a piece in the board.
type PieceOnBoard struct {
	Pos  Pos
	Team Team
}

// EmptyBoard returns the default board without any pieces, with Red to play.
func EmptyBoard() *Board {
	b := NewBoard()
	for _, team := range Teams {
		for _, pos := range b.TeamPositions(team) {
			b.RemovePiece(pos)
		}
	}
	return b
}

// BuildBoard from a collection of pieces placed on an EmptyBoard. It panics if a piece
// can't be placed, since that is a broken test.
func BuildBoard(layout []PieceOnBoard) (b *Board) {
	b = EmptyBoard()
	for _, p := range layout {
		if err := b.PlacePiece(p.Pos, p.Team); err != nil {
			panic(errors.WithMessage(err, "statetest.BuildBoard"))
		}
	}
	return
}

// PrintBoard prints the board and whose turn it is, for debugging tests.
func PrintBoard(b *Board) {
	fmt.Printf("Move #%d, %s to play", b.MoveNumber, b.CurrentPlayer())
	if pos, ok := b.MustMoveFrom(); ok {
		fmt.Printf(", jumping from %s", pos)
	}
	fmt.Printf("\n%s\n", b)
}
