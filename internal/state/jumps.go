package state

import (
	"github.com/LanMao8866/hexjump/internal/generics"
	"slices"
)

// jumpTarget returns where a piece at from lands when jumping over the piece at over:
// the straight-line extension past over.
func jumpTarget(from, over Pos) Pos {
	return over.Add(over.Sub(from))
}

// JumpLandings returns all the empty slots reachable from origin by jumping over pieces,
// possibly through several jumps in a row. It doesn't include origin itself, nor any of
// the excluded positions: an excluded position is not landed on nor jumped from.
//
// Only the board occupancy is considered: not whose turn it is, nor a jump sequence in
// progress. The returned positions are sorted.
func (b *Board) JumpLandings(origin Pos, excluded ...Pos) []Pos {
	if !b.Exists(origin) {
		return nil
	}

	// BFS over landing positions.
	visited := generics.SetWith(origin)
	toVisit := []Pos{origin}
	var landings []Pos
	for len(toVisit) > 0 {
		current := toVisit[0]
		toVisit = toVisit[1:]
		for _, over := range b.OccupiedNeighbours(current) {
			target := jumpTarget(current, over)
			if !b.IsEmptySlot(target) || slices.Contains(excluded, target) || visited.Has(target) {
				continue
			}
			visited.Insert(target)
			landings = append(landings, target)
			toVisit = append(toVisit, target)
		}
	}
	SortPositions(landings)
	return landings
}
