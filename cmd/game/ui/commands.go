package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"groundtruth/internal/game"
)

type responseMsg struct {
	text string
}

// processCommand runs one game turn off the UI loop. ProcessCommand never
// returns an error; every failure is already player-visible text.
func processCommand(master *game.GameMaster, input string) tea.Cmd {
	return func() tea.Msg {
		return responseMsg{text: master.ProcessCommand(context.Background(), input)}
	}
}
