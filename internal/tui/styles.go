// Package tui owns the operator-facing surfaces: lipgloss styling for the
// console output and the bubbletea confirmation prompt used before uploads.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A623"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Banner renders a step heading.
func Banner(text string) string {
	return accentStyle.Render("==> " + text)
}

// Success renders a confirmation line.
func Success(text string) string {
	return successStyle.Render("✓ " + text)
}

// Failure renders an error line.
func Failure(text string) string {
	return errorStyle.Render("✗ " + text)
}

// Warning renders a cautionary line.
func Warning(text string) string {
	return warnStyle.Render("! " + text)
}

// Hint renders a secondary, de-emphasized line.
func Hint(text string) string {
	return dimStyle.Render(text)
}

// Bullet renders a list entry for artifact review.
func Bullet(name, detail string) string {
	if detail == "" {
		return "  • " + name
	}
	return fmt.Sprintf("  • %s %s", name, dimStyle.Render(detail))
}

// Printf writes a styled line to the console writer, tolerating a nil writer
// so steps can run without a console in tests.
func Printf(out io.Writer, format string, args ...any) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}
