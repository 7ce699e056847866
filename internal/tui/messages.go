package tui

import (
	"github.com/alexisbeaulieu97/flashgenie/internal/application/generation"
	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	domaintheme "github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"
)

// GeneratedMsg carries the generator outcome for one submission back onto
// the update loop.
type GeneratedMsg struct {
	Submission generation.Submission
	Cards      []flashcard.Card
	Err        error
}

// StateChangedMsg reports a controller transition.
type StateChangedMsg struct {
	State flashcard.State
}

// ThemeChangedMsg reports an accepted theme change.
type ThemeChangedMsg struct {
	Theme domaintheme.Preference
}
