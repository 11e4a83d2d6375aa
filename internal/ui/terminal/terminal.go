// Package terminal has helpers to handle the text terminal: interrupt handling, resetting
// colors, clearing the screen and centering blocks of text.
package terminal

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}

		// Wait for gracePeriod before exiting.
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Exitf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h\033[39;49;0m\n")
}

// ClearScreen and move the cursor to the top-left corner.
func ClearScreen(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[H\033[2J")
}

// Width of the terminal attached to w, or DefaultWidth if w is not a terminal.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// DisplayWidth of s, not counting its color/control sequences.
func DisplayWidth(s string) int {
	return lipgloss.Width(s)
}

// PrintCentered prints the block of text, line by line, centered in the width of the terminal
// attached to w. Lines are shifted by the same indentation, so the block stays aligned.
func PrintCentered(w io.Writer, block string) {
	block = strings.TrimSuffix(block, "\n")
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, DisplayWidth(line))
	}
	indent := max((Width(w)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(w)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// CenterString pads s with spaces on both sides to fit the given width.
func CenterString(s string, fit int) string {
	width := DisplayWidth(s)
	if width >= fit {
		return s
	}
	marginLeft := (fit - width) / 2
	marginRight := fit - width - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}
