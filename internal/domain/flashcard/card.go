// Package flashcard holds the generation lifecycle model: cards, the tagged
// GenerationState variant, and the read-only view projected from it.
package flashcard

// Card is one term/definition pair produced by the remote generation service.
// The client does not enforce non-empty fields; strings are display content.
type Card struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
}

func cloneCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
