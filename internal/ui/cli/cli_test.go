package cli

import (
	"bytes"
	. "github.com/LanMao8866/hexjump/internal/state"
	. "github.com/LanMao8866/hexjump/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"strings"
	"testing"
)

// newTestUI returns a UI without colors reading the given input, and the buffer with its output.
func newTestUI(input string) (*UI, *bytes.Buffer) {
	var out bytes.Buffer
	return New(false, false).WithIO(strings.NewReader(input), &out), &out
}

func TestNewFromConfig(t *testing.T) {
	ui, err := NewFromConfig("color,clear_screen=false")
	require.NoError(t, err)
	assert.True(t, ui.color)
	assert.False(t, ui.clearScreen)

	_, err = NewFromConfig("colour")
	assert.Error(t, err)
	_, err = NewFromConfig("color=sometimes")
	assert.Error(t, err)
}

func TestReadCommand(t *testing.T) {
	b := NewBoard()

	ui, out := newTestUI("hello\n0 -2 -1 -1\n")
	cmd, err := ui.ReadCommand(b)
	require.NoError(t, err)
	assert.Equal(t, Command{From: Pos{0, -2}, To: Pos{-1, -1}}, cmd)
	assert.Contains(t, out.String(), "Failed to parse your input \"hello\"")

	// Target on a second prompt.
	ui, out = newTestUI("0 -2\n-1, -1\n")
	cmd, err = ui.ReadCommand(b)
	require.NoError(t, err)
	assert.Equal(t, Command{From: Pos{0, -2}, To: Pos{-1, -1}}, cmd)
	assert.Contains(t, out.String(), "target >")

	// Too many errors.
	ui, out = newTestUI("stop\n0 0 0 0\n300 0 1 1\n")
	_, err = ui.ReadCommand(b)
	assert.True(t, errors.Is(err, errTooManyInputErrors), "Got %v", err)
	assert.Contains(t, out.String(), "no jump sequence to stop")
	assert.Contains(t, out.String(), "Invalid move (0, 0)->(0, 0)")
	assert.Contains(t, out.String(), "failed to parse coordinate \"300\"")

	ui, _ = newTestUI("quit\n")
	_, err = ui.ReadCommand(b)
	assert.Equal(t, ErrQuit, err)

	ui, _ = newTestUI("")
	_, err = ui.ReadCommand(b)
	assert.Equal(t, io.EOF, err)

	// ReadCommand never changes the board.
	assert.True(t, b.Equal(NewBoard()))
}

func TestAskYesNo(t *testing.T) {
	ui, out := newTestUI("maybe\nYes\n")
	answer, err := ui.AskYesNo("Continue?")
	require.NoError(t, err)
	assert.True(t, answer)
	assert.Contains(t, out.String(), "Please enter 'y' for yes or 'n' for no")

	ui, _ = newTestUI("n")
	answer, err = ui.AskYesNo("Continue?")
	require.NoError(t, err)
	assert.False(t, answer)
}

func TestPrintBoard(t *testing.T) {
	ui, out := newTestUI("")
	ui.Print(NewBoard(), true)
	text := out.String()
	assert.Contains(t, text, "Move #1")
	assert.Contains(t, text, "r=-4")
	assert.Contains(t, text, "Current player: Red Team")
	assert.Contains(t, text, "Move piece at (0, -2) to one of [(-4, -2), (4, -2), (-1, -1), (1, -1)]")
	assert.NotContains(t, text, "JUMP SEQUENCE")
}

func TestRunWinningMove(t *testing.T) {
	// Red is one step away from filling its target region.
	b := BuildBoard([]PieceOnBoard{
		{Pos{0, 4}, Red},
		{Pos{-1, 3}, Red},
		{Pos{1, 3}, Red},
		{Pos{-2, 2}, Red},
		{Pos{2, 2}, Red},
		{Pos{-1, 1}, Red},
	})
	ui, out := newTestUI("foo\nbar\nbaz\n-1 1 0 2\n")
	require.NoError(t, ui.Run(b))
	assert.Equal(t, Red, b.Winner())
	text := out.String()
	assert.Contains(t, text, "Failed to parse your input \"baz\"")
	assert.Contains(t, text, "Move success!")
	assert.Contains(t, text, "RED TEAM WINS")
}

// jumpBoard has a Red piece that can jump twice in a row.
func jumpBoard() *Board {
	return BuildBoard([]PieceOnBoard{
		{Pos{-2, 0}, Red},
		{Pos{-4, -2}, Red},
		{Pos{0, 0}, Blue},
		{Pos{3, -1}, Blue},
	})
}

func TestRunJumpSequence(t *testing.T) {
	// Decline to continue jumping.
	b := jumpBoard()
	ui, out := newTestUI("-2 0 2 0\nmaybe\nn\n")
	err := ui.Run(b)
	assert.True(t, errors.Is(err, io.EOF), "Got %v", err)
	assert.Equal(t, Blue, b.CurrentPlayer())
	assert.Equal(t, RedPiece, b.CellAt(Pos{2, 0}))
	assert.Contains(t, out.String(), "JUMP SEQUENCE")
	assert.Contains(t, out.String(), "Jump sequence stopped")

	// Continue jumping until there are no more jumps.
	b = jumpBoard()
	ui, _ = newTestUI("-2 0 2 0\ny\n-4 -2 -3 -1\n2 0 4 -2\n")
	err = ui.Run(b)
	assert.True(t, errors.Is(err, io.EOF), "Got %v", err)
	assert.Equal(t, Blue, b.CurrentPlayer())
	assert.Equal(t, RedPiece, b.CellAt(Pos{4, -2}))

	// Stop with a command.
	b = jumpBoard()
	ui, _ = newTestUI("-2 0 2 0\ny\nstop\n")
	err = ui.Run(b)
	assert.True(t, errors.Is(err, io.EOF), "Got %v", err)
	assert.Equal(t, Blue, b.CurrentPlayer())
	assert.Equal(t, RedPiece, b.CellAt(Pos{2, 0}))
}
