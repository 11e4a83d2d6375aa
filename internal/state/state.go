// Package state holds the board state of a jumping-pegs match and its rules.
//
// A Board owns the cells of the star-shaped hex board, which team plays next and, when
// a piece is in the middle of a sequence of jumps, the state of that chain. Boards are
// mutated in place by Board.Move and Board.StopJumpSequence. Different Board objects
// share nothing, so they can be used concurrently, but a single Board must not.
package state

import (
	"github.com/LanMao8866/hexjump/internal/generics"
	"github.com/pkg/errors"
	"maps"
	"slices"
)

// Team owning pieces. Teams play in the fixed cyclic order Red, Blue, Green.
type Team uint8

const (
	Red Team = iota
	Blue
	Green

	// TeamInvalid represents no team, the null value.
	TeamInvalid
)

// NumTeams playing a match.
const NumTeams = 3

var (
	// Teams enumerates the teams in playing order.
	Teams = [NumTeams]Team{Red, Blue, Green}

	TeamNames   = [NumTeams + 1]string{"Red", "Blue", "Green", "Invalid"}
	TeamLetters = [NumTeams + 1]string{"R", "B", "G", "?"}
)

// String returns the team name.
func (t Team) String() string {
	if t > TeamInvalid {
		return TeamNames[TeamInvalid]
	}
	return TeamNames[t]
}

// Next returns the team that plays after t.
func (t Team) Next() Team {
	return (t + 1) % NumTeams
}

// CellKind classifies a cell of the board.
type CellKind uint8

const (
	// OffBoard positions are not part of the board.
	OffBoard CellKind = iota
	// Occupied cells hold a piece of some team.
	Occupied
	// EmptySlot cells can receive a piece.
	EmptySlot
	// DecorativeSlot cells are part of the board outline only: they are never occupied,
	// and are never the target of a move.
	DecorativeSlot
)

// Cell is the encoded content of a board position: its kind and, if occupied, the team.
type Cell uint8

const (
	NoCell Cell = iota
	EmptyCell
	DecorativeCell
	RedPiece
	BluePiece
	GreenPiece
)

// CellSymbols maps each Cell to the symbol used when rendering the board as text.
var CellSymbols = [...]string{
	NoCell:         " ",
	EmptyCell:      "-",
	DecorativeCell: ".",
	RedPiece:       "R",
	BluePiece:      "B",
	GreenPiece:     "G",
}

// PieceOf returns the Cell holding a piece of the given team.
func PieceOf(team Team) Cell {
	return RedPiece + Cell(team)
}

// Kind of the cell.
func (c Cell) Kind() CellKind {
	switch c {
	case EmptyCell:
		return EmptySlot
	case DecorativeCell:
		return DecorativeSlot
	case RedPiece, BluePiece, GreenPiece:
		return Occupied
	default:
		return OffBoard
	}
}

// Team owning the piece in the cell, or TeamInvalid if the cell is not occupied.
func (c Cell) Team() Team {
	if c.Kind() != Occupied {
		return TeamInvalid
	}
	return Team(c - RedPiece)
}

// Symbol used to render the cell.
func (c Cell) Symbol() string {
	if int(c) >= len(CellSymbols) {
		return CellSymbols[NoCell]
	}
	return CellSymbols[c]
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	switch c.Kind() {
	case Occupied:
		return c.Team().String()
	case EmptySlot:
		return "Empty"
	case DecorativeSlot:
		return "Decorative"
	default:
		return "OffBoard"
	}
}

// chainState is the bookkeeping of an unfinished jump sequence.
type chainState struct {
	// mustMoveFrom is the position of the piece that is jumping.
	mustMoveFrom Pos
	// lastMoveFrom is where the last jump started: it can't be jumped back to.
	lastMoveFrom Pos
	// visited positions during the chain, including where it started.
	visited generics.Set[Pos]
}

func (c *chainState) clone() *chainState {
	if c == nil {
		return nil
	}
	newC := *c
	newC.visited = c.visited.Clone()
	return &newC
}

// Board holds the state of a match: all cells, the team to play and the state of an
// unfinished jump sequence, if any.
//
// Use it through its methods, create it with NewBoard.
type Board struct {
	cells map[Pos]Cell

	// MoveNumber starts at 1 and is incremented every time a turn finishes.
	MoveNumber int

	// NextPlayer is the team to play.
	NextPlayer Team

	// chain is nil unless NextPlayer is in the middle of a sequence of jumps.
	chain *chainState
}

// newEmptyBoard returns a board without cells.
func newEmptyBoard() *Board {
	return &Board{
		cells:      make(map[Pos]Cell),
		MoveNumber: 1,
		NextPlayer: Red,
	}
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.cells = maps.Clone(b.cells)
	newB.chain = b.chain.clone()
	return newB
}

// Equal returns whether both boards have the same cells, next player, move number and
// jump sequence state.
func (b *Board) Equal(b2 *Board) bool {
	if b.NextPlayer != b2.NextPlayer || b.MoveNumber != b2.MoveNumber {
		return false
	}
	if !maps.Equal(b.cells, b2.cells) {
		return false
	}
	if (b.chain == nil) != (b2.chain == nil) {
		return false
	}
	if b.chain == nil {
		return true
	}
	return b.chain.mustMoveFrom == b2.chain.mustMoveFrom &&
		b.chain.lastMoveFrom == b2.chain.lastMoveFrom &&
		b.chain.visited.Equal(b2.chain.visited)
}

// CellAt returns the contents of the board at pos. Positions outside the board return NoCell.
func (b *Board) CellAt(pos Pos) Cell {
	return b.cells[pos]
}

// Exists returns whether pos is part of the board, including decorative slots.
func (b *Board) Exists(pos Pos) bool {
	_, found := b.cells[pos]
	return found
}

// HasPiece returns whether there is a piece on the given position of the board.
func (b *Board) HasPiece(pos Pos) bool {
	return b.cells[pos].Kind() == Occupied
}

// IsEmptySlot returns whether pos can receive a piece.
func (b *Board) IsEmptySlot(pos Pos) bool {
	return b.cells[pos] == EmptyCell
}

// TeamAt returns the team of the piece at pos, or TeamInvalid if there is no piece there.
func (b *Board) TeamAt(pos Pos) Team {
	return b.cells[pos].Team()
}

// PlacePiece puts a piece of the given team on an empty slot. It is meant to set up
// boards (tests, custom layouts), it is not a move and it doesn't change the next player.
func (b *Board) PlacePiece(pos Pos, team Team) error {
	if team >= TeamInvalid {
		return errors.Errorf("invalid team %d to place at %s", team, pos)
	}
	if !b.IsEmptySlot(pos) {
		return errors.Errorf("can't place %s piece at %s: cell is %s", team, pos, b.cells[pos])
	}
	b.cells[pos] = PieceOf(team)
	return nil
}

// RemovePiece takes the piece at pos out of the board, leaving an empty slot. It returns
// the team of the piece removed, or TeamInvalid if there was no piece.
func (b *Board) RemovePiece(pos Pos) Team {
	team := b.TeamAt(pos)
	if team != TeamInvalid {
		b.cells[pos] = EmptyCell
	}
	return team
}

// Positions returns all positions of the board (including decorative ones), sorted.
func (b *Board) Positions() []Pos {
	positions := generics.KeysSlice(b.cells)
	SortPositions(positions)
	return positions
}

// TeamPositions returns the sorted positions of the pieces of the given team.
func (b *Board) TeamPositions(team Team) []Pos {
	var positions []Pos
	for pos, cell := range b.cells {
		if cell.Kind() == Occupied && cell.Team() == team {
			positions = append(positions, pos)
		}
	}
	SortPositions(positions)
	return positions
}

// CountPieces returns the number of pieces of the given team on the board.
func (b *Board) CountPieces(team Team) (count int) {
	piece := PieceOf(team)
	for _, cell := range b.cells {
		if cell == piece {
			count++
		}
	}
	return
}

// UsedLimits returns the max/min of q/r used in the board.
func (b *Board) UsedLimits() (minQ, maxQ, minR, maxR int8) {
	first := true
	for pos := range b.cells {
		q, r := pos.Q(), pos.R()
		if first || q > maxQ {
			maxQ = q
		}
		if first || q < minQ {
			minQ = q
		}
		if first || r > maxR {
			maxR = r
		}
		if first || r < minR {
			minR = r
		}
		first = false
	}
	return
}

// CurrentPlayer returns the team to play.
func (b *Board) CurrentPlayer() Team {
	return b.NextPlayer
}

// IsInJumpSequence returns whether the current player is in the middle of a sequence of jumps.
func (b *Board) IsInJumpSequence() bool {
	return b.chain != nil
}

// MustMoveFrom returns the position of the piece that must keep jumping. The second
// value is false if there is no jump sequence in progress.
func (b *Board) MustMoveFrom() (Pos, bool) {
	if b.chain == nil {
		return Pos{}, false
	}
	return b.chain.mustMoveFrom, true
}

// Visited returns the sorted positions visited by the current jump sequence, including
// where it started. It is empty if there is no jump sequence in progress.
func (b *Board) Visited() []Pos {
	if b.chain == nil {
		return nil
	}
	visited := slices.Collect(b.chain.visited.Iter())
	SortPositions(visited)
	return visited
}
