// Package tui is the interactive terminal front end. It renders controller
// and theme state and forwards user intent; it makes no decisions itself.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/flashgenie/internal/application/generation"
	apptheme "github.com/alexisbeaulieu97/flashgenie/internal/application/theme"
	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	domaintheme "github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

const (
	keySubmit     = "enter"
	keyNewline    = "ctrl+j"
	keyLightTheme = "alt+l"
	keyDarkTheme  = "alt+d"

	changeBuffer = 16
)

// Model contains the Bubble Tea state for the generator screen.
type Model struct {
	ctx        context.Context
	controller *generation.Controller
	generator  ports.Generator
	theme      apptheme.Handle

	input   textarea.Model
	spinner spinner.Model
	width   int
	done    bool

	changes     chan tea.Msg
	unsubscribe []func()
}

// NewModel wires the screen to its controller, the generator the controller
// resolves against, and the theme handle. It subscribes to both; call Close
// once the program has exited.
func NewModel(ctx context.Context, controller *generation.Controller, generator ports.Generator, theme apptheme.Handle) Model {
	input := textarea.New()
	input.Placeholder = "Enter a topic or paste a definition…"
	input.ShowLineNumbers = false
	input.CharLimit = 2000
	input.SetHeight(3)
	input.KeyMap.InsertNewline.SetKeys(keyNewline)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = loadingStyle

	changes := make(chan tea.Msg, changeBuffer)
	m := Model{
		ctx:        ctx,
		controller: controller,
		generator:  generator,
		theme:      theme,
		input:      input,
		spinner:    spin,
		changes:    changes,
	}
	m.unsubscribe = []func(){
		controller.Subscribe(func(state flashcard.State) {
			forward(changes, StateChangedMsg{State: state})
		}),
		theme.Subscribe(func(pref domaintheme.Preference) {
			forward(changes, ThemeChangedMsg{Theme: pref})
		}),
	}
	return m
}

// forward never blocks. Observers run on the update loop; a full buffer drops
// the notification and the next render re-derives the view anyway.
func forward(changes chan<- tea.Msg, msg tea.Msg) {
	select {
	case changes <- msg:
	default:
	}
}

// Init starts the cursor blink and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForChange(m.changes))
}

// Close removes the controller and theme subscriptions.
func (m Model) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
}

// IsDone reports whether the user asked to quit.
func (m Model) IsDone() bool {
	return m.done
}

// CurrentView projects the controller's current state.
func (m Model) CurrentView() flashcard.View {
	return m.controller.View()
}
