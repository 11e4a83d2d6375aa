// hexjump plays a three-team jumping pegs match on the terminal, with all teams played by
// humans taking turns on the same keyboard.
package main

import (
	"flag"
	"fmt"
	. "github.com/LanMao8866/hexjump/internal/state"
	"github.com/LanMao8866/hexjump/internal/ui/cli"
	"github.com/LanMao8866/hexjump/internal/ui/terminal"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"os"
	"time"
)

var (
	flagUI = flag.String("ui", "color,clear_screen",
		"UI configuration, comma-separated: \"color\" to use colors, \"clear_screen\" to clear the "+
			"screen before printing the board.")
	flagRules = flag.Bool("rules", false, "Print the rules and exit.")
)

const rules = `Jumping pegs for three teams: Red, Blue and Green, playing in this order.

- On your turn, move one of your pieces to an empty slot ('-') directly connected to it,
  or jump over an adjacent piece (of any team) to the empty slot right behind it.
- After a jump you may keep jumping with the same piece, but never back to a slot already
  visited in the same turn. Answer 'n' (or type 'stop') to end the turn.
- Pieces jumped over stay on the board.
- The first team to fill the corner opposite to its start wins.

Positions are given as "q r": see the column (q) and row (r) labels around the board.
Type "q r q r" to move from the first position to the second one, or "quit" to leave.
`

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagRules {
		fmt.Print(rules)
		return
	}

	ui := must.M1(cli.NewFromConfig(*flagUI))

	// Capture Control+C: restore the terminal colors and exit, even if blocked reading the input.
	terminal.SafeInterrupt(nil, 100*time.Millisecond)
	defer terminal.Reset(os.Stdout)

	board := NewBoard()
	err := ui.Run(board)
	switch {
	case err == nil:
		klog.V(1).Infof("Match finished after %d moves, %s won", board.MoveNumber-1, board.Winner())
	case errors.Is(err, cli.ErrQuit), errors.Is(err, io.EOF):
		fmt.Printf("\nMatch abandoned at move #%d.\n", board.MoveNumber)
	default:
		klog.Exitf("Failed to run match: %+v", err)
	}
}
