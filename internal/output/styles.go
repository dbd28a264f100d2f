package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: URLs, paths, version names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for an available update.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for degraded results.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleTitle styles prompt titles.
	StyleTitle = lipgloss.NewStyle().Bold(true)
)

// Check status constants.
const (
	StatusAvailable = "update available"
	StatusCurrent   = "up to date"
	StatusSkipped   = "skipped"
	StatusDegraded  = "degraded"
	StatusFailed    = "failed"
)

// StatusStyle returns the style for a check status string.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAvailable:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusCurrent, StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusDegraded:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStatusLine renders "label  status" with a color-coded status.
func FormatStatusLine(label, status string) string {
	return fmt.Sprintf("%s  %s", StyleNoun.Render(label), StatusStyle(status).Render(status))
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatFailure renders a red cross with a message.
func FormatFailure(msg string) string {
	cross := lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed).Render("✖")
	return cross + " " + msg
}
