package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/render"
)

// CardEntry is one card prepared for display.
type CardEntry struct {
	Index      int
	Term       string
	Definition string
}

// CardList renders generated cards as plain text.
type CardList struct {
	entries []CardEntry
}

// NewCardList sanitizes cards for display, preserving order.
func NewCardList(cards []flashcard.Card) CardList {
	entries := make([]CardEntry, 0, len(cards))
	for i, card := range render.Sanitize(cards) {
		entries = append(entries, CardEntry{Index: i + 1, Term: card.Term, Definition: card.Definition})
	}
	return CardList{entries: entries}
}

// View renders each card as a bordered block using the supplied styles.
func (c CardList) View(card, term lipgloss.Style, width int) string {
	blocks := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		header := term.Render(fmt.Sprintf("%d. %s", entry.Index, entry.Term))
		style := card
		if width > 0 {
			style = style.Width(width)
		}
		blocks = append(blocks, style.Render(header+"\n"+entry.Definition))
	}
	return strings.Join(blocks, "\n")
}
