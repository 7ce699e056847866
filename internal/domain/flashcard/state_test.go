package flashcard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvedWithCardsIsSuccess(t *testing.T) {
	cards := []Card{{Term: "Mitochondria", Definition: "The powerhouse of the cell"}}

	state := Resolved("sub-1", "biology", cards)

	success, ok := state.(Success)
	require.True(t, ok, "expected Success, got %T", state)
	assert.Equal(t, PhaseSuccess, success.Phase())
	assert.Equal(t, "sub-1", success.Submission())
	assert.Equal(t, cards, success.Cards())
}

func TestResolvedWithoutCardsIsEmpty(t *testing.T) {
	for _, cards := range [][]Card{nil, {}} {
		state := Resolved("sub-2", "nothing", cards)

		empty, ok := state.(Empty)
		require.True(t, ok, "expected Empty, got %T", state)
		assert.Equal(t, "nothing", empty.Topic)
	}
}

func TestSuccessCardsAreCopied(t *testing.T) {
	cards := []Card{{Term: "a", Definition: "b"}}
	state := Resolved("sub", "topic", cards).(Success)

	cards[0].Term = "mutated"
	got := state.Cards()
	got[0].Definition = "mutated"

	assert.Equal(t, "a", state.Cards()[0].Term)
	assert.Equal(t, "b", state.Cards()[0].Definition)
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		state State
		want  bool
	}{
		{Idle{}, false},
		{Validating{}, false},
		{InFlight{Topic: "x"}, false},
		{Resolved("", "x", []Card{{Term: "t"}}), true},
		{Empty{}, true},
		{Failed{Message: "boom"}, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.state.Phase()), func(t *testing.T) {
			assert.Equal(t, tc.want, IsTerminal(tc.state))
		})
	}
}

func TestProjectView(t *testing.T) {
	card := Card{Term: "Mitochondria", Definition: "The powerhouse of the cell"}

	cases := []struct {
		name        string
		state       State
		loading     bool
		message     string
		cards       int
		showHeading bool
	}{
		{name: "nil", state: nil},
		{name: "idle", state: Idle{}},
		{name: "validating", state: Validating{SubmissionID: "s"}},
		{name: "in flight", state: InFlight{Topic: "cells"}, loading: true},
		{name: "success", state: Resolved("s", "cells", []Card{card}), cards: 1, showHeading: true},
		{name: "empty", state: Empty{Topic: "cells"}, message: MessageNoFlashcards},
		{name: "failed", state: Failed{Message: "Rate limit exceeded", Reason: ErrCodeTransport}, message: "Rate limit exceeded"},
		{name: "failed without message", state: Failed{}, message: MessageUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := Project(tc.state)
			assert.Equal(t, tc.loading, view.IsLoading)
			assert.Equal(t, tc.message, view.ErrorMessage)
			assert.Equal(t, tc.message != "", view.HasError())
			assert.Len(t, view.Cards, tc.cards)
			assert.Equal(t, tc.showHeading, view.ShowResultsHeading)
			assert.False(t, view.IsLoading && view.HasError(), "loading and error must never coexist")
		})
	}
}

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	err := NewDomainError(ErrCodeThemeInput, "unsupported theme", nil, map[string]interface{}{"value": "purple"})
	wrapped := fmt.Errorf("set theme: %w", err)

	assert.True(t, errors.Is(wrapped, ErrThemeInput))
	assert.False(t, errors.Is(wrapped, NewDomainError(ErrCodeTransport, "remote failed", nil, nil)))
	assert.False(t, errors.Is(errors.New("plain"), ErrThemeInput))
}

func TestDomainErrorFormatting(t *testing.T) {
	inner := errors.New("disk full")
	err := NewDomainError(ErrCodeTransport, "remote failed", inner, nil)

	assert.Equal(t, "TRANSPORT_ERROR: remote failed: disk full", err.Error())
	assert.ErrorIs(t, err, inner)

	var nilErr *DomainError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
