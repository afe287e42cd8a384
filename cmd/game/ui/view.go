package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	for _, msg := range m.messages {
		switch {
		case strings.HasPrefix(msg, "> "):
			b.WriteString(promptStyle.Render(msg))
		case strings.HasPrefix(msg, "[DEBUG]"):
			b.WriteString(debugStyle.Render(msg))
		default:
			b.WriteString(narrationStyle.Render(m.wrap(msg)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.spin.View() + " thinking...")
	} else {
		b.WriteString(inputStyle.Render(m.input.View()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) wrap(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width - 2).Render(s)
}
