package state

import (
	"github.com/LanMao8866/hexjump/internal/generics"
)

// targetRegions are the cells, opposite to each team's starting corner, that a team must
// fill with its pieces to win.
var targetRegions = [NumTeams]generics.Set[Pos]{
	Red:   generics.SetWith(Pos{0, 4}, Pos{-1, 3}, Pos{1, 3}, Pos{-2, 2}, Pos{0, 2}, Pos{2, 2}),
	Blue:  generics.SetWith(Pos{4, 0}, Pos{3, -1}, Pos{5, -1}, Pos{2, -2}, Pos{4, -2}, Pos{6, -2}),
	Green: generics.SetWith(Pos{-4, 0}, Pos{-5, -1}, Pos{-3, -1}, Pos{-6, -2}, Pos{-4, -2}, Pos{-2, -2}),
}

// TargetRegion returns the sorted positions of the target region of the team.
func TargetRegion(team Team) []Pos {
	if team >= TeamInvalid {
		return nil
	}
	region := generics.KeysSlice(targetRegions[team])
	SortPositions(region)
	return region
}

// InTargetRegion returns whether pos is in the target region of the team.
func InTargetRegion(pos Pos, team Team) bool {
	if team >= TeamInvalid {
		return false
	}
	return targetRegions[team].Has(pos)
}

// CheckWin returns the team that has all its pieces in its target region. The second value
// is false if no team has won yet.
//
// Teams are checked in playing order, and the first one found is returned. It doesn't change
// the board and can be called at any time, including during a jump sequence.
func (b *Board) CheckWin() (Team, bool) {
	var total, inTarget [NumTeams]int
	for pos, cell := range b.cells {
		team := cell.Team()
		if team == TeamInvalid {
			continue
		}
		total[team]++
		if InTargetRegion(pos, team) {
			inTarget[team]++
		}
	}
	for _, team := range Teams {
		if total[team] > 0 && inTarget[team] == total[team] {
			return team, true
		}
	}
	return TeamInvalid, false
}

// IsFinished returns whether some team has won the match.
func (b *Board) IsFinished() bool {
	_, won := b.CheckWin()
	return won
}

// Winner returns the team that won the match, or TeamInvalid if the match is not finished.
func (b *Board) Winner() Team {
	team, _ := b.CheckWin()
	return team
}
