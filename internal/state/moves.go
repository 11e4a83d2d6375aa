package state

import (
	"github.com/LanMao8866/hexjump/internal/generics"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"slices"
)

// Errors returned by Board.Move and Board.StopJumpSequence. They are wrapped with the details
// of the move, use errors.Is to check for them.
var (
	// ErrWrongPiece is returned when a jump sequence is in progress and the move doesn't
	// start from the piece that is jumping.
	ErrWrongPiece = errors.New("wrong piece, the jump sequence must continue")

	// ErrBadEndpoint is returned when the move doesn't start at a piece of the current player,
	// or doesn't end at an empty slot.
	ErrBadEndpoint = errors.New("invalid move endpoints")

	// ErrNoPath is returned when the target is neither directly connected nor reachable by jumps.
	ErrNoPath = errors.New("no step or jump leads to the target")

	// ErrRevisit is returned when the target was already visited in the current jump sequence.
	ErrRevisit = errors.New("target already visited by the jump sequence")

	// ErrNotInJumpSequence is returned by StopJumpSequence if there is nothing to stop.
	ErrNotInJumpSequence = errors.New("no jump sequence in progress")
)

// checkMove validates a move for the current player without changing the board. It returns
// whether it is a jump (as opposed to a single step).
func (b *Board) checkMove(from, to Pos) (jump bool, err error) {
	if b.chain != nil && from != b.chain.mustMoveFrom {
		return false, errors.Wrapf(ErrWrongPiece, "moving from %s, but must continue jumping from %s",
			from, b.chain.mustMoveFrom)
	}
	if team := b.TeamAt(from); team != b.NextPlayer {
		return false, errors.Wrapf(ErrBadEndpoint, "%s has no %s piece at %s (cell is %s)",
			b.NextPlayer, b.NextPlayer, from, b.CellAt(from))
	}
	if !b.IsEmptySlot(to) {
		return false, errors.Wrapf(ErrBadEndpoint, "target %s is not an empty slot (cell is %s)", to, b.CellAt(to))
	}

	if b.chain == nil {
		// A direct connection is always a step, even if a jump would also reach the target.
		if IsValidConnection(from, to) {
			return false, nil
		}
		if !slices.Contains(b.JumpLandings(from), to) {
			return false, errors.Wrapf(ErrNoPath, "from %s to %s", from, to)
		}
		return true, nil
	}

	if b.chain.visited.Has(to) {
		return false, errors.Wrapf(ErrRevisit, "from %s to %s", from, to)
	}
	if !slices.Contains(b.JumpLandings(from, b.chain.lastMoveFrom), to) {
		return false, errors.Wrapf(ErrNoPath, "jumping from %s to %s (came from %s)", from, to, b.chain.lastMoveFrom)
	}
	return true, nil
}

// IsValidMove returns whether Move(from, to) would succeed.
func (b *Board) IsValidMove(from, to Pos) bool {
	_, err := b.checkMove(from, to)
	return err == nil
}

// Move the current player's piece from one position to another, either by a single step
// to a directly connected empty slot, or by jumping over pieces.
//
// After a jump, if the piece can keep jumping (without going back or revisiting a position
// of the sequence), the same player keeps playing and must move the same piece, see
// IsInJumpSequence and MustMoveFrom. Otherwise, the turn passes to the next team.
//
// On error the board is left unchanged. Errors wrap ErrWrongPiece, ErrBadEndpoint, ErrNoPath
// or ErrRevisit.
func (b *Board) Move(from, to Pos) error {
	jump, err := b.checkMove(from, to)
	if err != nil {
		return err
	}

	// Nothing can fail from here on.
	team := b.NextPlayer
	b.cells[to] = b.cells[from]
	b.cells[from] = EmptyCell
	if !jump {
		klog.V(2).Infof("Move #%d: %s steps %s->%s", b.MoveNumber, team, from, to)
		b.endTurn()
		return nil
	}

	var visited generics.Set[Pos]
	if b.chain == nil {
		visited = generics.SetWith(from, to)
	} else {
		visited = b.chain.visited
		visited.Insert(to)
	}
	continuations := generics.SetWith(b.JumpLandings(to, from)...).Sub(visited)
	if len(continuations) == 0 {
		klog.V(2).Infof("Move #%d: %s jumps %s->%s, no more jumps", b.MoveNumber, team, from, to)
		b.endTurn()
		return nil
	}
	klog.V(2).Infof("Move #%d: %s jumps %s->%s, %d possible continuations", b.MoveNumber, team, from, to, len(continuations))
	b.chain = &chainState{
		mustMoveFrom: to,
		lastMoveFrom: from,
		visited:      visited,
	}
	return nil
}

// StopJumpSequence ends the jump sequence in progress, even if the piece could keep
// jumping, and passes the turn to the next team.
func (b *Board) StopJumpSequence() error {
	if b.chain == nil {
		return errors.Wrapf(ErrNotInJumpSequence, "%s can't stop jumping", b.NextPlayer)
	}
	klog.V(2).Infof("Move #%d: %s stops jumping at %s", b.MoveNumber, b.NextPlayer, b.chain.mustMoveFrom)
	b.endTurn()
	return nil
}

// endTurn clears the jump sequence and passes the turn to the next team.
func (b *Board) endTurn() {
	b.chain = nil
	b.NextPlayer = b.NextPlayer.Next()
	b.MoveNumber++
}

// ValidMoves returns all the valid moves of the current player, indexed by the position of
// the piece to move. Target positions are sorted.
//
// During a jump sequence only the jumping piece can move, and only by jumping.
func (b *Board) ValidMoves() map[Pos][]Pos {
	var sources []Pos
	var excluded []Pos
	if b.chain != nil {
		sources = []Pos{b.chain.mustMoveFrom}
		excluded = []Pos{b.chain.lastMoveFrom}
	} else {
		sources = b.TeamPositions(b.NextPlayer)
	}

	moves := make(map[Pos][]Pos, len(sources))
	for _, from := range sources {
		targets := generics.MakeSet[Pos]()
		if b.chain == nil {
			targets.Insert(b.EmptyNeighbours(from)...)
		}
		for _, to := range b.JumpLandings(from, excluded...) {
			if b.chain != nil && b.chain.visited.Has(to) {
				continue
			}
			targets.Insert(to)
		}
		if len(targets) == 0 {
			continue
		}
		targetsSlice := slices.Collect(targets.Iter())
		SortPositions(targetsSlice)
		moves[from] = targetsSlice
	}
	return moves
}
