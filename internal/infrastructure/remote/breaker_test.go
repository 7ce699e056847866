package remote

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

type scriptedGenerator struct {
	calls atomic.Int32
	err   error
	cards []flashcard.Card
}

func (g *scriptedGenerator) Generate(context.Context, string) ([]flashcard.Card, error) {
	g.calls.Add(1)
	return g.cards, g.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	inner := &scriptedGenerator{err: apperrors.NewTransportError(503, "Service Unavailable", "")}
	breaker := NewBreakerGenerator(inner, BreakerOptions{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := breaker.Generate(context.Background(), "topic")
		require.Error(t, err)
	}
	assert.Equal(t, "open", breaker.State())

	_, err := breaker.Generate(context.Background(), "topic")

	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, MessageUnavailable, transportErr.UserMessage())
	assert.Equal(t, int32(2), inner.calls.Load(), "open circuit must not reach the service")
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	t.Parallel()

	inner := &scriptedGenerator{err: apperrors.NewTransportError(429, "Too Many Requests", "Rate limit exceeded")}
	breaker := NewBreakerGenerator(inner, BreakerOptions{MaxFailures: 1})

	for i := 0; i < 3; i++ {
		_, err := breaker.Generate(context.Background(), "topic")
		var transportErr *apperrors.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, "Rate limit exceeded", transportErr.UserMessage())
	}
	assert.Equal(t, "closed", breaker.State())
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	t.Parallel()

	inner := &scriptedGenerator{cards: []flashcard.Card{{Term: "a", Definition: "b"}}}
	breaker := NewBreakerGenerator(inner, BreakerOptions{})

	cards, err := breaker.Generate(context.Background(), "topic")
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestIsHealthyOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, isHealthyOutcome(nil))
	assert.True(t, isHealthyOutcome(apperrors.NewTransportError(404, "Not Found", "")))
	assert.False(t, isHealthyOutcome(apperrors.NewTransportError(500, "Internal Server Error", "")))
	assert.False(t, isHealthyOutcome(apperrors.WrapTransportError(errors.New("refused"))))
	assert.False(t, isHealthyOutcome(errors.New("other")))
}
