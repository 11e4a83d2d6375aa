package state

import (
	"fmt"
	"slices"
)

// Pos packages the axial (q, r) coordinates of a cell. The implicit third axis is -(q+r).
type Pos [2]int8

// Q coordinate of the position: the column axis.
func (pos Pos) Q() int8 {
	return pos[0]
}

// R coordinate of the position: the row axis.
func (pos Pos) R() int8 {
	return pos[1]
}

// Add returns pos + delta.
func (pos Pos) Add(delta Pos) Pos {
	return Pos{pos[0] + delta[0], pos[1] + delta[1]}
}

// Sub returns the delta pos - pos2.
func (pos Pos) Sub(pos2 Pos) Pos {
	return Pos{pos[0] - pos2[0], pos[1] - pos2[1]}
}

// Distance returns the hex distance between two positions.
func (pos Pos) Distance(pos2 Pos) int {
	dq := int(pos[0]) - int(pos2[0])
	dr := int(pos[1]) - int(pos2[1])
	return (absInt(dq) + absInt(dr) + absInt(dq+dr)) / 2
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

// MaxCoordinate bounds the hexagon that encloses the star board.
const MaxCoordinate = 6

// IsValidPosition returns whether pos is within the hexagon enclosing the board.
//
// The board map is the authoritative existence check. Notice the tips of the Blue and
// Green corners, e.g. (6, 2), are outside this hexagon.
func IsValidPosition(pos Pos) bool {
	q, r := int(pos[0]), int(pos[1])
	return absInt(q) <= MaxCoordinate && absInt(r) <= MaxCoordinate && absInt(q+r) <= MaxCoordinate
}

// ComparePos orders positions by row (R) first and then by column (Q).
func ComparePos(a, b Pos) int {
	if a[1] != b[1] {
		return int(a[1]) - int(b[1])
	}
	return int(a[0]) - int(b[0])
}

// SortPositions sorts according to row first and then column.
func SortPositions(positions []Pos) {
	slices.SortFunc(positions, ComparePos)
}

// PosStrings converts the positions to their string representation.
func PosStrings(poss []Pos) []string {
	strs := make([]string, len(poss))
	for ii, pos := range poss {
		strs[ii] = pos.String()
	}
	return strs
}
