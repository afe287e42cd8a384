package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.SetValue("")

			if handled, model, cmd := m.handleDebugCommand(input); handled {
				return model, cmd
			}

			m.messages = append(m.messages, "> "+input)
			m.loading = true
			return m, tea.Batch(m.spin.Tick, processCommand(m.master, input))
		}

	case responseMsg:
		m.loading = false
		m.messages = append(m.messages, msg.text, "")
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDebugCommand(input string) (bool, tea.Model, tea.Cmd) {
	switch input {
	case "/quit":
		return true, m, tea.Quit
	case "/state":
		if !m.debug {
			return false, m, nil
		}
		state := m.master.State()
		player := state.PlayerEntity()
		line := fmt.Sprintf("[DEBUG] location=%s", state.Location())
		if player != nil {
			line += fmt.Sprintf(" money=%d", player.Money())
		}
		m.messages = append(m.messages, line)
		return true, m, nil
	}
	return false, m, nil
}
