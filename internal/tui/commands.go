package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/flashgenie/internal/application/generation"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

// waitForChange blocks until the next controller or theme notification.
func waitForChange(changes <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-changes
	}
}

// generateCmd calls the generator off the update loop.
func generateCmd(ctx context.Context, generator ports.Generator, sub generation.Submission) tea.Cmd {
	return func() tea.Msg {
		cards, err := generator.Generate(ctx, sub.Topic)
		return GeneratedMsg{Submission: sub, Cards: cards, Err: err}
	}
}
