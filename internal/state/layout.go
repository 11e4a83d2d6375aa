package state

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultLayout of the star board, one string per row. Each character is a column:
//
//   - '0': position not on the board.
//   - '-': empty slot.
//   - '_': decorative slot.
//   - 'R', 'B', 'G': slot occupied by a piece of the Red, Blue or Green team.
//
// Row DefaultOriginRow, column DefaultOriginCol is the position (0, 0). Moving one column
// right increments Q, moving one row down increments R.
var DefaultLayout = []string{
	"000000R000000",
	"00000R_R00000",
	"-_-_R_R_R_-_-",
	"0-_-_-_-_-_-0",
	"00B_-_-_-_G00",
	"0B_B_-_-_G_G0",
	"B_B_B_-_G_G_G",
	"00000-_-00000",
	"000000-000000",
}

const (
	DefaultOriginCol = 6
	DefaultOriginRow = 4
)

var layoutCells = map[rune]Cell{
	'-': EmptyCell,
	'_': DecorativeCell,
	'R': RedPiece,
	'B': BluePiece,
	'G': GreenPiece,
}

// NewBoard creates the board at the start of a match: DefaultLayout, with Red to play.
func NewBoard() *Board {
	b, err := ParseLayout(DefaultLayout, DefaultOriginCol, DefaultOriginRow)
	if err != nil {
		klog.Fatalf("DefaultLayout is invalid: %+v", err)
	}
	return b
}

// ParseLayout creates a board from the given rows, see DefaultLayout for the format.
// The character at row originRow and column originCol becomes position (0, 0).
// Red plays first.
func ParseLayout(rows []string, originCol, originRow int) (*Board, error) {
	b := newEmptyBoard()
	for rowIdx, row := range rows {
		for colIdx, c := range []rune(row) {
			if c == '0' {
				continue
			}
			cell, ok := layoutCells[c]
			if !ok {
				return nil, errors.Errorf("invalid layout character %q in row %d, column %d", c, rowIdx, colIdx)
			}
			q, r := colIdx-originCol, rowIdx-originRow
			pos := Pos{int8(q), int8(r)}
			if int(pos[0]) != q || int(pos[1]) != r {
				return nil, errors.Errorf("layout position (%d, %d) in row %d, column %d is out of bounds",
					q, r, rowIdx, colIdx)
			}
			b.cells[pos] = cell
		}
	}
	return b, nil
}
