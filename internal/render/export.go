package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
)

// Format names an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text, json, or yaml)", value)
	}
}

// Deck is the export document.
type Deck struct {
	Topic      string           `json:"topic" yaml:"topic"`
	Flashcards []flashcard.Card `json:"flashcards" yaml:"flashcards"`
}

// Sanitize returns copies of cards with both fields reduced to plain text.
func Sanitize(cards []flashcard.Card) []flashcard.Card {
	out := make([]flashcard.Card, len(cards))
	for i, c := range cards {
		out[i] = flashcard.Card{Term: PlainText(c.Term), Definition: PlainText(c.Definition)}
	}
	return out
}

// Write encodes the cards generated for topic to w in format.
func Write(w io.Writer, format Format, topic string, cards []flashcard.Card) error {
	deck := Deck{Topic: topic, Flashcards: Sanitize(cards)}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(deck)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(deck); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, deck)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeText(w io.Writer, deck Deck) error {
	var b strings.Builder
	for i, card := range deck.Flashcards {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, card.Term, card.Definition)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
