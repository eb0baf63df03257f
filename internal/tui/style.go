package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("244")
	colorWarning = lipgloss.Color("220")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
)

// stylize applies a foreground color when colors are enabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// timerColor turns the countdown amber and then red as it runs out.
func timerColor(remaining int) lipgloss.Color {
	switch {
	case remaining <= 3:
		return colorError
	case remaining <= 10:
		return colorWarning
	default:
		return colorMuted
	}
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
