// Package ui renders operator-facing status lines. Log output goes
// through zap; these helpers cover the interactive summary and the
// colored INFO/OK/WARN/ERROR lines the workflow prints between prompts.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output streams, swappable in tests. Warnings and errors go to stderr.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Semantic colors for status indication, ANSI codes for terminal
// compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle   = lipgloss.NewStyle().Bold(true)
)

// Info prints an informational status line to stdout.
func Info(format string, a ...any) {
	fmt.Fprintln(stdout, infoStyle.Render("[INFO]")+" "+fmt.Sprintf(format, a...))
}

// Success prints a success status line to stdout.
func Success(format string, a ...any) {
	fmt.Fprintln(stdout, successStyle.Render("[ OK ]")+" "+fmt.Sprintf(format, a...))
}

// Warn prints a warning status line to stderr.
func Warn(format string, a ...any) {
	fmt.Fprintln(stderr, warnStyle.Render("[WARN]")+" "+fmt.Sprintf(format, a...))
}

// Error prints an error status line to stderr.
func Error(format string, a ...any) {
	fmt.Fprintln(stderr, errorStyle.Render("[FAIL]")+" "+fmt.Sprintf(format, a...))
}

// KeyValue prints an aligned "label: value" line, used by the config
// summary and the final environment-variable output.
func KeyValue(label, value string) {
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", label+":")), value)
}

// Muted prints a secondary line to stdout.
func Muted(format string, a ...any) {
	fmt.Fprintln(stdout, mutedStyle.Render(fmt.Sprintf(format, a...)))
}
