// Package color provides color detection and theming for CLI output.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Profile reports whether color output should be enabled.
//
// Color is disabled when any of:
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - noColorFlag is true (--no-color CLI flag)
//   - stdout is not a terminal
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return IsTerminal(os.Stdout)
}

// IsTerminal returns true if the given file is a terminal.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// Theme holds lipgloss styles for diagnostic output.
type Theme struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Check   lipgloss.Style
	File    lipgloss.Style
	Line    lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty
// (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Check:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		File:    lipgloss.NewStyle().Bold(true),
		Line:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
