package state

import (
	"iter"
	"slices"
)

// StepDirections are the 6 unit hex directions, listed clockwise starting at the right.
var StepDirections = [6]Pos{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1}}

// ExtendedDirections connect two cells at distance 2 that are separated by a slot (usually
// decorative) of this board. They count as directly adjacent for moves and for jumping over.
var ExtendedDirections = [8]Pos{{2, 0}, {-2, 0}, {2, -1}, {1, 1}, {-1, 2}, {-2, 1}, {-1, -1}, {1, -2}}

// Connections enumerates all deltas accepted by IsValidConnection.
var Connections = slices.Concat(StepDirections[:], ExtendedDirections[:])

// IsValidConnection returns whether from and to are directly connected: a piece can step
// from one to the other, or jump over a piece in to if it starts at from.
func IsValidConnection(from, to Pos) bool {
	delta := to.Sub(from)
	switch from.Distance(to) {
	case 1:
		return slices.Contains(StepDirections[:], delta)
	case 2:
		return slices.Contains(ExtendedDirections[:], delta)
	}
	return false
}

// ConnectedNeighboursIter iterates over the positions of the board directly connected to pos,
// including decorative slots and occupied cells.
func (b *Board) ConnectedNeighboursIter(pos Pos) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for _, delta := range Connections {
			neighbour := pos.Add(delta)
			if !b.Exists(neighbour) {
				continue
			}
			if !yield(neighbour) {
				return
			}
		}
	}
}

// OccupiedNeighbours returns the positions of the pieces directly connected to pos.
func (b *Board) OccupiedNeighbours(pos Pos) (positions []Pos) {
	for neighbour := range b.ConnectedNeighboursIter(pos) {
		if b.HasPiece(neighbour) {
			positions = append(positions, neighbour)
		}
	}
	return
}

// EmptyNeighbours returns the empty slots directly connected to pos: where a piece at pos
// could step to.
func (b *Board) EmptyNeighbours(pos Pos) (positions []Pos) {
	for neighbour := range b.ConnectedNeighboursIter(pos) {
		if b.IsEmptySlot(neighbour) {
			positions = append(positions, neighbour)
		}
	}
	return
}
