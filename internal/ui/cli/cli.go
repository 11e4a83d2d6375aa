// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"github.com/LanMao8866/hexjump/internal/parameters"
	. "github.com/LanMao8866/hexjump/internal/state"
	"github.com/LanMao8866/hexjump/internal/ui/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// CellWidth is the number of characters used by each column of the board.
const CellWidth = 3

// MaxInputErrors is the number of consecutive invalid commands before the board is printed again.
const MaxInputErrors = 3

var (
	moveParser = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)[\s,]+(-?\d+)[\s,]+(-?\d+)[\s,]*$`)
	posParser  = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)[\s,]*$`)

	// ErrQuit is returned when the user asks to quit the match.
	ErrQuit = errors.New("user quit")

	errTooManyInputErrors = errors.Errorf("failed to read command %d times", MaxInputErrors)
)

// UI plays a match on a text terminal.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer

	teamStyles                               [NumTeams]lipgloss.Style
	emptyStyle, decorativeStyle, headerStyle lipgloss.Style
}

// New creates a UI that reads from stdin and writes to stdout.
func New(color bool, clearScreen bool) *UI {
	ui := &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	ui.teamStyles = [NumTeams]lipgloss.Style{
		Red:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		Blue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		Green: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")),
	}
	ui.emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	ui.decorativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ui.headerStyle = lipgloss.NewStyle().Faint(true)
	return ui
}

// NewFromConfig creates a UI configured by a string like "color,clear_screen=false".
// Unknown keys are an error.
func NewFromConfig(config string) (*UI, error) {
	params := parameters.NewFromConfigString(config)
	color, err := parameters.PopParamOr(params, "color", false)
	if err != nil {
		return nil, err
	}
	clearScreen, err := parameters.PopParamOr(params, "clear_screen", false)
	if err != nil {
		return nil, err
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessage(err, "UI configuration")
	}
	return New(color, clearScreen), nil
}

// WithIO changes where the UI reads commands from and writes to. It returns itself.
func (ui *UI) WithIO(in io.Reader, out io.Writer) *UI {
	ui.reader = bufio.NewReader(in)
	ui.out = out
	return ui
}

// Command read from the user: either a move, or stopping the jump sequence.
type Command struct {
	Stop     bool
	From, To Pos
}

// Run the match on the board until a team wins. The board is changed in place.
//
// It returns ErrQuit if the user quits, or the reader error (io.EOF) if the input is closed.
func (ui *UI) Run(board *Board) error {
	for {
		if board.IsFinished() {
			ui.Print(board, false)
			ui.PrintWinner(board)
			return nil
		}
		if err := ui.RunNextMove(board); err != nil {
			return err
		}
	}
}

// RunNextMove prints the board and reads commands until one is successfully applied to it.
func (ui *UI) RunNextMove(board *Board) error {
	for {
		ui.Print(board, true)
		ui.println()
		if board.IsInJumpSequence() {
			keepJumping, err := ui.AskYesNo("    Do you want to continue jumping?")
			if err != nil {
				return err
			}
			if !keepJumping {
				return ui.stop(board)
			}
		}
		cmd, err := ui.ReadCommand(board)
		if errors.Is(err, errTooManyInputErrors) {
			continue
		}
		if err != nil {
			return err
		}
		if cmd.Stop {
			return ui.stop(board)
		}
		player := board.CurrentPlayer()
		if err = board.Move(cmd.From, cmd.To); err != nil {
			// ReadCommand already validated the move.
			return errors.WithMessagef(err, "failed to apply validated move %s->%s", cmd.From, cmd.To)
		}
		klog.V(1).Infof("%s moved %s->%s", player, cmd.From, cmd.To)
		ui.printf("    Move success!\n")
		return nil
	}
}

func (ui *UI) stop(board *Board) error {
	if err := board.StopJumpSequence(); err != nil {
		return err
	}
	ui.printf("    Jump sequence stopped, turn ended.\n")
	return nil
}

// AskYesNo prints the question and reads answers until it gets a yes or a no.
func (ui *UI) AskYesNo(question string) (bool, error) {
	for {
		ui.printf("%s (y/n): ", question)
		text, err := ui.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(text) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		ui.printf("    * Please enter 'y' for yes or 'n' for no.\n")
	}
}

// readLine returns the next line of input with surrounding spaces removed.
func (ui *UI) readLine() (string, error) {
	text, err := ui.reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ReadCommand reads and validates the next command for the current player. A move can be given
// as "q r q r", or as "q r" followed by the target "q r" on a second prompt. During a jump
// sequence "stop" ends the turn. "quit" returns ErrQuit.
//
// It gives up after MaxInputErrors invalid commands.
func (ui *UI) ReadCommand(b *Board) (cmd Command, err error) {
	// ANSI escape codes for:
	// - \033[30;45;2m: Black on a magenta (purple-ish) background
	// - \033[39;49;0m: Reset all attributes to defaults, and clear to the end-of-line.
	const (
		inputAreaColor = "\033[30;45;2m"
		inputAreaReset = "\033[39;49;0m\033[0K"
		inputWidth     = 14
	)

	for numErrs := 0; numErrs < MaxInputErrors; numErrs++ {
		ui.printf("    %s move > ", ui.teamName(b.CurrentPlayer()))
		if ui.color {
			// Print "input area" in purple, and move the cursor back to the beginning of it.
			ui.printf("%s%s\033[%dD", inputAreaColor, strings.Repeat(" ", inputWidth), inputWidth-1)
		}
		var text string
		text, err = ui.readLine()
		if ui.color {
			ui.printf(inputAreaReset)
		}
		if err != nil {
			return
		}

		switch strings.ToLower(text) {
		case "quit", "exit":
			err = ErrQuit
			return
		case "stop":
			if !b.IsInJumpSequence() {
				ui.printf("    * There is no jump sequence to stop.\n")
				continue
			}
			cmd.Stop = true
			return
		}

		var positions []Pos
		if matches := moveParser.FindStringSubmatch(text); len(matches) == 5 {
			positions, err = parsePositions(matches[1:])
		} else if matches = posParser.FindStringSubmatch(text); len(matches) == 3 {
			positions, err = parsePositions(matches[1:])
			if err == nil {
				ui.printf("    %s target > ", ui.teamName(b.CurrentPlayer()))
				text, err = ui.readLine()
				if err != nil {
					return
				}
				matches = posParser.FindStringSubmatch(text)
				if len(matches) != 3 {
					ui.printf("    * Failed to parse target position %q, please try again.\n", text)
					continue
				}
				var target []Pos
				target, err = parsePositions(matches[1:])
				positions = append(positions, target...)
			}
		} else {
			ui.printf("    * Failed to parse your input %q, please try again.\n", text)
			continue
		}
		if err != nil {
			ui.printf("    * %v\n", err)
			continue
		}

		cmd.From, cmd.To = positions[0], positions[1]
		if err = b.Clone().Move(cmd.From, cmd.To); err != nil {
			ui.printf("    * Invalid move %s->%s: %v\n", cmd.From, cmd.To, err)
			if pos, ok := b.MustMoveFrom(); ok {
				ui.printf("    * You must continue jumping with the piece at %s, or type 'stop'.\n", pos)
			}
			continue
		}
		return cmd, nil
	}
	err = errTooManyInputErrors
	return
}

// parsePositions converts pairs of "q", "r" strings to positions.
func parsePositions(values []string) ([]Pos, error) {
	positions := make([]Pos, 0, len(values)/2)
	for ii := 0; ii+1 < len(values); ii += 2 {
		var pos Pos
		for jj := range 2 {
			i64, err := strconv.ParseInt(values[ii+jj], 10, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse coordinate %q", values[ii+jj])
			}
			pos[jj] = int8(i64)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// Print the board, whose turn it is and optionally the available moves.
func (ui *UI) Print(board *Board, includeMoves bool) {
	if ui.clearScreen {
		terminal.ClearScreen(ui.out)
	}
	ui.printf("\n%s\n\n", ui.style(ui.headerStyle, fmt.Sprintf("----- Move #%d -----", board.MoveNumber)))
	ui.PrintBoard(board)
	ui.println()
	if board.IsFinished() {
		return
	}
	ui.printf("Current player: %s\n", ui.teamName(board.CurrentPlayer()))
	if pos, ok := board.MustMoveFrom(); ok {
		ui.printf("*** JUMP SEQUENCE: you must continue jumping with the piece at %s, or stop ***\n", pos)
	}
	if includeMoves {
		ui.printMoves(board)
	}
}

// PrintBoard prints the board centered on the terminal, with the coordinates on the margins:
// columns are labeled with Q and rows with R.
func (ui *UI) PrintBoard(board *Board) {
	minQ, maxQ, minR, _ := board.UsedLimits()
	mustMoveFrom, chaining := board.MustMoveFrom()
	var sb strings.Builder
	const rowLabelWidth = 6
	sb.WriteString(strings.Repeat(" ", rowLabelWidth))
	for q := int(minQ); q <= int(maxQ); q++ {
		sb.WriteString(ui.style(ui.headerStyle, fmt.Sprintf("%*d", CellWidth, q)))
	}
	sb.WriteString("\n")
	for rowIdx, row := range board.Render() {
		r := int(minR) + rowIdx
		sb.WriteString(ui.style(ui.headerStyle, fmt.Sprintf("r=%-3d ", r)))
		for colIdx, symbol := range row {
			pos := Pos{int8(int(minQ) + colIdx), int8(r)}
			style := ui.cellStyle(board.CellAt(pos))
			if chaining && pos == mustMoveFrom {
				style = style.Underline(true).Blink(true)
			}
			sb.WriteString(ui.style(style, terminal.CenterString(symbol, CellWidth)))
		}
		sb.WriteString("\n")
	}
	terminal.PrintCentered(ui.out, sb.String())
}

// cellStyle returns the style used to render the cell.
func (ui *UI) cellStyle(cell Cell) lipgloss.Style {
	switch cell.Kind() {
	case Occupied:
		return ui.teamStyles[cell.Team()]
	case EmptySlot:
		return ui.emptyStyle
	case DecorativeSlot:
		return ui.decorativeStyle
	default:
		return lipgloss.NewStyle()
	}
}

func (ui *UI) style(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

func (ui *UI) teamName(team Team) string {
	name := fmt.Sprintf("%s Team", team)
	if team == TeamInvalid {
		return name
	}
	return ui.style(ui.teamStyles[team], name)
}

// PrintWinner prints a banner with the winner, if the match is finished.
func (ui *UI) PrintWinner(b *Board) {
	winner, won := b.CheckWin()
	if !won {
		return
	}
	ui.println()
	banner := fmt.Sprintf("*** GAME OVER: %s TEAM WINS!! Congratulations! ***", strings.ToUpper(winner.String()))
	if ui.color {
		banner = ui.teamStyles[winner].Padding(1, 2).Render(banner)
	}
	terminal.PrintCentered(ui.out, banner)
	ui.println()
}

// printMoves lists the valid moves organized by the piece to move, and an example command.
func (ui *UI) printMoves(b *Board) {
	moves := b.ValidMoves()
	if len(moves) == 0 {
		ui.printf("- All your pieces are blocked, no movement is possible.\n")
		return
	}
	sources := make([]Pos, 0, len(moves))
	for from := range moves {
		sources = append(sources, from)
	}
	SortPositions(sources)
	ui.printf("- Available moves:\n")
	for _, from := range sources {
		ui.printf("  - Move piece at %s to one of [%s]\n", from, strings.Join(PosStrings(moves[from]), ", "))
	}
	from := sources[0]
	to := moves[from][0]
	ui.printf("    Example: to move the piece at %s to %s, type '%d %d %d %d'\n",
		from, to, from.Q(), from.R(), to.Q(), to.R())
	if b.IsInJumpSequence() {
		ui.printf("    Or type 'stop' to end your turn.\n")
	}
}

func (ui *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

func (ui *UI) println() {
	_, _ = fmt.Fprintln(ui.out)
}
