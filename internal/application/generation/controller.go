// Package generation drives the lifecycle of a flashcard generation request.
package generation

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

// Submission identifies one accepted or rejected request.
type Submission struct {
	ID    string
	Topic string
}

// Controller owns the single GenerationState. It never queues or cancels:
// callers gate new submissions on View().IsLoading, and a resolution for a
// submission that is no longer current is dropped.
type Controller struct {
	generator ports.Generator
	logger    ports.Logger
	events    ports.EventPublisher
	newID     func() string

	mu        sync.Mutex
	state     flashcard.State
	observers map[int]func(flashcard.State)
	nextObs   int
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger ports.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithEvents sets the publisher receiving generation.* events.
func WithEvents(events ports.EventPublisher) Option {
	return func(c *Controller) { c.events = events }
}

// WithIDGenerator replaces ULID submission IDs.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController creates a Controller in the Idle state.
func NewController(generator ports.Generator, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		newID:     func() string { return ulid.Make().String() },
		state:     flashcard.Idle{},
		observers: make(map[int]func(flashcard.State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger != nil {
		c.logger = c.logger.With("component", "generation_controller", "layer", "application")
	}
	return c
}

// State returns the current state.
func (c *Controller) State() flashcard.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns the presentation projection of the current state.
func (c *Controller) View() flashcard.View {
	return flashcard.Project(c.State())
}

// Subscribe registers fn to run after every transition, in order. The
// returned function removes the observer.
func (c *Controller) Subscribe(fn func(flashcard.State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObs++
	id := c.nextObs
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Submit validates raw, calls the generator, and blocks until the state is
// terminal. It returns the resulting state.
func (c *Controller) Submit(ctx context.Context, raw string) flashcard.State {
	sub, ok := c.Begin(ctx, raw)
	if !ok {
		return c.State()
	}
	cards, err := c.generator.Generate(ctx, sub.Topic)
	c.Resolve(ctx, sub, cards, err)
	return c.State()
}

// Begin runs validation and, when the topic is non-empty, moves to InFlight
// with prior results cleared. It reports whether the caller should invoke the
// generator for the returned submission.
func (c *Controller) Begin(ctx context.Context, raw string) (Submission, bool) {
	sub := Submission{ID: c.newID(), Topic: strings.TrimSpace(raw)}

	c.mu.Lock()
	c.state = flashcard.Validating{SubmissionID: sub.ID}
	transitions := []flashcard.State{c.state}

	accepted := sub.Topic != ""
	if accepted {
		c.state = flashcard.InFlight{SubmissionID: sub.ID, Topic: sub.Topic}
	} else {
		c.state = flashcard.Failed{
			SubmissionID: sub.ID,
			Message:      flashcard.MessageEmptyTopic,
			Reason:       flashcard.ErrCodeValidation,
		}
	}
	transitions = append(transitions, c.state)
	observers := c.observerList()
	c.mu.Unlock()

	notify(observers, transitions)

	if accepted {
		c.debug(ctx, "submission in flight", "submission_id", sub.ID, "topic", sub.Topic)
		c.publish(ctx, ports.EventGenerationSubmitted, map[string]interface{}{
			"submission_id": sub.ID,
			"topic":         sub.Topic,
		})
	} else {
		c.debug(ctx, "submission rejected", "submission_id", sub.ID, "reason", flashcard.ErrCodeValidation)
		c.publish(ctx, ports.EventGenerationRejected, map[string]interface{}{
			"submission_id": sub.ID,
			"reason":        string(flashcard.ErrCodeValidation),
		})
	}
	return sub, accepted
}

// Resolve applies the outcome of the generator call for sub. It returns false
// and leaves the state untouched when sub is not the in-flight submission.
func (c *Controller) Resolve(ctx context.Context, sub Submission, cards []flashcard.Card, err error) bool {
	c.mu.Lock()
	current, inFlight := c.state.(flashcard.InFlight)
	if !inFlight || current.SubmissionID != sub.ID {
		currentID := c.state.Submission()
		c.mu.Unlock()
		c.warn(ctx, "ignoring stale resolution", "submission_id", sub.ID, "current_submission_id", currentID)
		return false
	}

	var next flashcard.State
	if err != nil {
		message, reason := failureMessage(err)
		next = flashcard.Failed{SubmissionID: sub.ID, Message: message, Reason: reason}
	} else {
		next = flashcard.Resolved(sub.ID, current.Topic, cards)
	}
	c.state = next
	observers := c.observerList()
	c.mu.Unlock()

	notify(observers, []flashcard.State{next})

	switch st := next.(type) {
	case flashcard.Success:
		count := len(st.Cards())
		c.info(ctx, "flashcards generated", "submission_id", sub.ID, "cards", count)
		c.publish(ctx, ports.EventGenerationSucceeded, map[string]interface{}{
			"submission_id": sub.ID,
			"topic":         current.Topic,
			"cards":         count,
		})
	case flashcard.Empty:
		c.info(ctx, "no flashcards generated", "submission_id", sub.ID)
		c.publish(ctx, ports.EventGenerationEmpty, map[string]interface{}{
			"submission_id": sub.ID,
			"topic":         current.Topic,
			"reason":        string(flashcard.ErrCodeEmptyResult),
		})
	case flashcard.Failed:
		c.warn(ctx, "generation failed", "submission_id", sub.ID, "error", err)
		c.publish(ctx, ports.EventGenerationFailed, map[string]interface{}{
			"submission_id": sub.ID,
			"topic":         current.Topic,
			"reason":        string(st.Reason),
			"message":       st.Message,
		})
	}
	return true
}

// failureMessage picks the user-facing text for a generator error: the
// structured detail, else the status text, else the generic fallback.
func failureMessage(err error) (string, flashcard.ErrorCode) {
	var transportErr *apperrors.TransportError
	if errors.As(err, &transportErr) {
		if message := transportErr.UserMessage(); message != "" {
			return message, flashcard.ErrCodeTransport
		}
		return flashcard.MessageUnexpected, flashcard.ErrCodeTransport
	}

	var domainErr *flashcard.DomainError
	if errors.As(err, &domainErr) && strings.TrimSpace(domainErr.Message) != "" {
		return domainErr.Message, domainErr.Code
	}

	return flashcard.MessageUnexpected, flashcard.ErrCodeTransport
}

func (c *Controller) observerList() []func(flashcard.State) {
	if len(c.observers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(flashcard.State), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.observers[id])
	}
	return out
}

func notify(observers []func(flashcard.State), transitions []flashcard.State) {
	for _, state := range transitions {
		for _, fn := range observers {
			fn(state)
		}
	}
}
