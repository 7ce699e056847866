package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/flashgenie/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	sections := []string{
		titleStyle.Render("Flashcard Genie"),
		hintStyle.Render(fmt.Sprintf("theme: %s  •  %s light  •  %s dark", m.theme.Theme(), keyLightTheme, keyDarkTheme)),
		"",
		m.input.View(),
		hintStyle.Render(fmt.Sprintf("%s generate  •  %s newline  •  esc quit", keySubmit, keyNewline)),
	}

	view := m.CurrentView()
	switch {
	case view.IsLoading:
		sections = append(sections, loadingStyle.Render(m.spinner.View()+" Generating flashcards…"))
	case view.HasError():
		sections = append(sections, errorStyle.Render(view.ErrorMessage))
	}

	if view.ShowResultsHeading {
		sections = append(sections, sectionStyle.Render(fmt.Sprintf("Generated Flashcards (%d)", len(view.Cards))))
		width := 0
		if m.width > 4 {
			width = m.width - 4
		}
		sections = append(sections, components.NewCardList(view.Cards).View(cardStyle, termStyle, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
