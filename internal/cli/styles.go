package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D75F00") // Clip orange
	accentColor  = lipgloss.Color("#5FAFFF") // Blue
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintTitle prints a styled section title.
func PrintTitle(w io.Writer, title string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
}

// PrintKeyValue prints one "key: value" line.
func PrintKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, name, version string) {
	PrintTitle(w, name)
	PrintKeyValue(w, "Version", version)
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintInfo prints a status message to stderr.
func PrintInfo(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", InfoStyle.Render("›"), message)
}
