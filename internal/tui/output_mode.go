package tui

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 120

// OutputMode selects how records are displayed.
type OutputMode int

// Output modes.
const (
	// OutputModeInteractive runs the full-screen browser.
	OutputModeInteractive OutputMode = iota
	// OutputModePlain prints the table once, without styles.
	OutputModePlain
)

// DetectOutputMode returns plain when forced or when stdout is not a terminal.
func DetectOutputMode(forcePlain bool, stdout *os.File) OutputMode {
	if forcePlain || stdout == nil || !term.IsTerminal(int(stdout.Fd())) {
		return OutputModePlain
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of f, or fallback when it is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
