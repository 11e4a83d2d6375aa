package state

import "strings"

// Render returns the board as rows of cell symbols (see CellSymbols), from the smallest R to the
// largest, each row going from the smallest Q to the largest used in the board.
// Positions not on the board are rendered as spaces, so columns are aligned.
func (b *Board) Render() [][]string {
	minQ, maxQ, minR, maxR := b.UsedLimits()
	rows := make([][]string, 0, int(maxR)-int(minR)+1)
	for r := int(minR); r <= int(maxR); r++ {
		row := make([]string, 0, int(maxQ)-int(minQ)+1)
		for q := int(minQ); q <= int(maxQ); q++ {
			row = append(row, b.CellAt(Pos{int8(q), int8(r)}).Symbol())
		}
		rows = append(rows, row)
	}
	return rows
}

// String renders the board as plain text, one line per row and symbols separated by spaces.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Render() {
		sb.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
