package ports

import (
	"context"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
)

// Generator is the remote generation operation. Generate sends the trimmed
// topic and returns the ordered cards the service produced.
//
// Contract:
//   - a decodable response without a card list returns (nil, nil); the caller
//     treats it as an empty result.
//   - non-success responses return a *errors.TransportError carrying the
//     structured detail when the service supplied one.
//   - implementations bound their own latency; callers impose no timeout.
type Generator interface {
	Generate(ctx context.Context, topic string) ([]flashcard.Card, error)
}
