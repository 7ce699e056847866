package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
)

// Update handles Bubble Tea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil
	case GeneratedMsg:
		m.controller.Resolve(m.ctx, msg.Submission, msg.Cards, msg.Err)
		return m, nil
	case StateChangedMsg:
		return m.syncInput(), waitForChange(m.changes)
	case ThemeChangedMsg:
		return m, waitForChange(m.changes)
	case spinner.TickMsg:
		if !m.CurrentView().IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case keySubmit:
			return m.submit()
		case keyLightTheme:
			_ = m.theme.SetTheme(m.ctx, "light")
			return m, nil
		case keyDarkTheme:
			_ = m.theme.SetTheme(m.ctx, "dark")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncInput disables the topic field while a request is in flight and
// re-enables it once the submission has ended.
func (m Model) syncInput() Model {
	switch state := m.controller.State(); {
	case flashcard.IsTerminal(state):
		m.input.Focus()
	case m.CurrentView().IsLoading:
		m.input.Blur()
	}
	return m
}

// submit is ignored while a request is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.CurrentView().IsLoading {
		return m, nil
	}
	sub, ok := m.controller.Begin(m.ctx, m.input.Value())
	if !ok {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, generateCmd(m.ctx, m.generator, sub))
}
