package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"groundtruth/internal/game"
)

type Model struct {
	master   *game.GameMaster
	messages []string
	input    textinput.Model
	spin     spinner.Model
	loading  bool
	debug    bool
	width    int
	height   int
}

func NewModel(master *game.GameMaster, debug bool) Model {
	input := textinput.New()
	input.Placeholder = "What do you do?"
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	messages := []string{"You find yourself in a tavern. (Try: look around)"}
	if debug {
		messages = append(messages, "[DEBUG] Debug commands: /state, /quit")
	}

	return Model{
		master:   master,
		messages: messages,
		input:    input,
		spin:     spin,
		debug:    debug,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
