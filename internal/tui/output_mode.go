package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode describes how results should be presented.
type OutputMode int

const (
	// OutputModePlain is uncolored text for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is colored but non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen dashboard.
	OutputModeInteractive
)

// DetectOutputMode picks a mode from flags, environment, and whether stdout is
// a terminal.
func DetectOutputMode(forcePlain, noColor, nonInteractive bool) OutputMode {
	if forcePlain || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !IsTerminal(os.Stdout) {
		return OutputModePlain
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if nonInteractive || os.Getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
