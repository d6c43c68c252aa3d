// Package ui provides terminal styling for agentsync output.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for passing results (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for error diagnostics and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for warning diagnostics (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational notices (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information such as paths.
	Dim = color.New(color.Faint).SprintFunc()
	// Header is used for section headings (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
)

func status(paint func(a ...any) string, symbol, msg string) string {
	if msg == "" {
		return paint(symbol)
	}
	return paint(symbol) + " " + msg
}

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string { return status(Success, SymbolSuccess, msg) }

// StatusError returns a red X with optional message.
func StatusError(msg string) string { return status(Error, SymbolError, msg) }

// StatusWarning returns a yellow warning sign with optional message.
func StatusWarning(msg string) string { return status(Warning, SymbolWarning, msg) }

// StatusSkipped returns a dimmed dash with optional message.
func StatusSkipped(msg string) string { return status(Dim, SymbolSkipped, msg) }

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}

// SetColorMode applies an auto/always/never preference. "auto" keeps the
// library's detection (NO_COLOR and TTY checks).
func SetColorMode(mode string) error {
	switch mode {
	case "", "auto":
	case "always":
		EnableColors()
	case "never":
		DisableColors()
	default:
		return fmt.Errorf("unknown color mode %q (valid: auto, always, never)", mode)
	}
	return nil
}
