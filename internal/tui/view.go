package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLoading:
		body = m.spinner.View() + " Loading questions..."
	case screenForm:
		body = renderForm(m)
	case screenQuestion:
		body = renderQuestion(m)
	case screenSubmitting:
		body = m.spinner.View() + " Submitting answers..."
	case screenFailed:
		body = "Press Enter to retry the submission, Esc to quit."
	case screenResult:
		body = renderResult(m)
	case screenLoadFailed:
		body = "Press Enter to quit."
	}

	lines := []string{stylize("Timed quiz", m.noColor, colorTitle), ""}
	if m.errMsg != "" {
		lines = append(lines, stylize(m.errMsg, m.noColor, colorError), "")
	}
	lines = append(lines, body)
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func renderForm(m Model) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.nameInput.View(),
		m.rollInput.View(),
		"",
		stylize("Tab switches fields, Enter starts the quiz.", m.noColor, colorMuted),
	)
}

func renderQuestion(m Model) string {
	question := m.question
	header := fmt.Sprintf("Question %d of %d", question.Index+1, question.Total)
	timer := stylize(fmt.Sprintf("%ds left", max(m.remaining, 0)), m.noColor, timerColor(m.remaining))

	action := "Next"
	if question.Last {
		action = "Finish"
	}
	hint := "Enter: " + action
	if !m.advanceEnabled {
		hint = "Please wait..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bold(header, m.noColor)+"  "+timer,
		"",
		question.Text,
		"",
		m.answerInput.View(),
		"",
		stylize(hint, m.noColor, colorMuted),
	)
}

func renderResult(m Model) string {
	score := fmt.Sprintf("Score: %s/%s", formatScore(m.result.Score), formatScore(m.result.Total))
	lines := []string{stylize(score, m.noColor, colorSuccess)}
	if strings.TrimSpace(m.result.PDFURL) != "" {
		lines = append(lines, "Result: "+m.result.PDFURL)
	}
	lines = append(lines, "", stylize("Press Enter to quit.", m.noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSummary is printed after the alternate screen is gone.
func renderSummary(m Model) string {
	line := fmt.Sprintf("Score: %s/%s", formatScore(m.result.Score), formatScore(m.result.Total))
	if strings.TrimSpace(m.result.PDFURL) != "" {
		line += "\nResult: " + m.result.PDFURL
	}
	return line
}
