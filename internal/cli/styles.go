// Package cli renders the console side of silencesplit: styled help,
// version and error output, and the media and run summaries.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E88E5") // Blue
	accentColor  = lipgloss.Color("#FFA500") // Orange
	successColor = lipgloss.Color("#00AA00") // Green
	errorColor   = lipgloss.Color("#C62828") // Red
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("silencesplit"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintHint prints a muted multi-line hint to stderr, e.g. install guidance.
func PrintHint(hint string) {
	fmt.Fprintln(os.Stderr, HintStyle.Render(hint))
}

func printKV(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(key), ValueStyle.Render(value))
}
