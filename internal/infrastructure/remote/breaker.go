package remote

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

// MessageUnavailable is reported while the circuit is open.
const MessageUnavailable = "The generation service is temporarily unavailable. Please try again shortly."

const (
	defaultMaxFailures uint32 = 5
	defaultOpenTimeout        = 30 * time.Second
)

// BreakerOptions configures the circuit breaker.
type BreakerOptions struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a half-open probe.
	OpenTimeout time.Duration
	Logger      ports.Logger
}

// BreakerGenerator guards a Generator with a circuit breaker so a failing
// service is not hammered by repeated submissions.
type BreakerGenerator struct {
	inner   ports.Generator
	breaker *gobreaker.CircuitBreaker[[]flashcard.Card]
}

// NewBreakerGenerator wraps inner. Zero options select defaults.
func NewBreakerGenerator(inner ports.Generator, opts BreakerOptions) *BreakerGenerator {
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	timeout := opts.OpenTimeout
	if timeout <= 0 {
		timeout = defaultOpenTimeout
	}
	logger := opts.Logger

	cb := gobreaker.NewCircuitBreaker[[]flashcard.Card](gobreaker.Settings{
		Name:        "generation",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn(context.Background(), "circuit breaker state change",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			}
		},
		IsSuccessful: isHealthyOutcome,
	})

	return &BreakerGenerator{inner: inner, breaker: cb}
}

// Generate implements ports.Generator.
func (b *BreakerGenerator) Generate(ctx context.Context, topic string) ([]flashcard.Card, error) {
	cards, err := b.breaker.Execute(func() ([]flashcard.Card, error) {
		return b.inner.Generate(ctx, topic)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &apperrors.TransportError{Detail: MessageUnavailable, Err: err}
	}
	return cards, err
}

// State reports the breaker state name (closed, half-open, open).
func (b *BreakerGenerator) State() string {
	return b.breaker.State().String()
}

// isHealthyOutcome treats client-side rejections (4xx) as a healthy service;
// connection failures, 5xx, and undecodable bodies count toward tripping.
func isHealthyOutcome(err error) bool {
	if err == nil {
		return true
	}
	var transportErr *apperrors.TransportError
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode >= 400 && transportErr.StatusCode < 500
	}
	return false
}

var _ ports.Generator = (*BreakerGenerator)(nil)
