// Package theme owns the process-wide light/dark preference.
package theme

import (
	"context"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	domaintheme "github.com/alexisbeaulieu97/flashgenie/internal/domain/theme"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

// Handle is the capability handed to the presentation layer: read the
// current preference, request a change, and observe accepted changes.
type Handle interface {
	Theme() domaintheme.Preference
	SetTheme(ctx context.Context, value string) error
	Subscribe(fn func(domaintheme.Preference)) func()
}

// Source records where the current preference came from.
type Source string

const (
	SourceStored  Source = "stored"
	SourceAmbient Source = "ambient"
	SourceDefault Source = "default"
	SourceUser    Source = "user"
)

// Deps are the collaborators of a Store. Only Storage is required; a nil
// Probe reports no dark preference.
type Deps struct {
	Storage ports.KeyValueStore
	Probe   ports.ColorSchemeProbe
	Applier ports.ThemeApplier
	Logger  ports.Logger
	Events  ports.EventPublisher
	Tracer  ports.Tracer
}

// Store holds the current preference and mirrors accepted changes to the
// renderer and durable storage.
type Store struct {
	storage ports.KeyValueStore
	applier ports.ThemeApplier
	logger  ports.Logger
	events  ports.EventPublisher
	tracer  ports.Tracer

	mu        sync.RWMutex
	current   domaintheme.Preference
	source    Source
	observers map[int]func(domaintheme.Preference)
	nextObs   int
}

// NewStore derives the initial preference (stored value, else ambient dark
// preference, else light) and applies it to the renderer. Storage failures
// count as an absent value.
func NewStore(ctx context.Context, deps Deps) *Store {
	s := &Store{
		storage:   deps.Storage,
		applier:   deps.Applier,
		logger:    deps.Logger,
		events:    deps.Events,
		tracer:    deps.Tracer,
		observers: make(map[int]func(domaintheme.Preference)),
	}
	if s.logger != nil {
		s.logger = s.logger.With("component", "theme_store", "layer", "application")
	}

	s.current, s.source = s.derive(ctx, deps.Probe)
	s.debug(ctx, "initial theme derived", "theme", s.current.String(), "source", string(s.source))
	s.apply(s.current)
	return s
}

func (s *Store) derive(ctx context.Context, probe ports.ColorSchemeProbe) (domaintheme.Preference, Source) {
	if s.storage != nil {
		value, found, err := s.storage.Get(ctx, domaintheme.StorageKey)
		switch {
		case err != nil:
			s.warn(ctx, "could not read stored theme", "key", domaintheme.StorageKey, "error", err)
		case found:
			if pref, ok := domaintheme.Parse(value); ok {
				return pref, SourceStored
			}
			s.debug(ctx, "ignoring unrecognised stored theme", "value", value)
		}
	}

	if probe != nil && probe.PrefersDark() {
		return domaintheme.Dark, SourceAmbient
	}
	return domaintheme.Default, SourceDefault
}

// Theme returns the current preference.
func (s *Store) Theme() domaintheme.Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Source reports how the current preference was decided.
func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetTheme accepts exactly "light" or "dark". Any other value is logged and
// leaves the preference unchanged; the returned THEME_INPUT_ERROR is for
// diagnostics only. Re-setting the current value re-applies it.
func (s *Store) SetTheme(ctx context.Context, value string) error {
	var span ports.Span
	if s.tracer != nil {
		ctx, span = s.tracer.StartSpan(ctx, "theme.set", "value", value)
		defer span.End()
	}

	pref, ok := domaintheme.Parse(value)
	if !ok {
		s.warn(ctx, "ignoring unsupported theme", "value", value)
		if span != nil {
			span.SetStatus(ports.SpanStatusError, "unsupported theme")
		}
		return flashcard.NewDomainError(flashcard.ErrCodeThemeInput, "unsupported theme", nil, map[string]interface{}{"value": value})
	}

	s.mu.Lock()
	previous := s.current
	s.current = pref
	s.source = SourceUser
	observers := s.observerList()
	s.mu.Unlock()

	s.apply(pref)
	s.persist(ctx, pref)

	for _, fn := range observers {
		fn(pref)
	}
	s.publish(ctx, map[string]interface{}{
		"theme":    pref.String(),
		"previous": previous.String(),
	})
	if span != nil {
		span.SetStatus(ports.SpanStatusOK, "")
	}
	return nil
}

// Subscribe registers fn to run after every accepted SetTheme. The returned
// function removes it.
func (s *Store) Subscribe(fn func(domaintheme.Preference)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextObs++
	id := s.nextObs
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) apply(pref domaintheme.Preference) {
	if s.applier != nil {
		s.applier.Apply(pref)
	}
}

// persist is best effort: failures are logged and never surfaced.
func (s *Store) persist(ctx context.Context, pref domaintheme.Preference) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, domaintheme.StorageKey, pref.String()); err != nil {
		s.warn(ctx, "could not persist theme", "theme", pref.String(), "error", err)
		return
	}
	s.debug(ctx, "theme persisted", "theme", pref.String())
}

func (s *Store) observerList() []func(domaintheme.Preference) {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(domaintheme.Preference), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.observers[id])
	}
	return out
}

func (s *Store) publish(ctx context.Context, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ports.Event{Type: ports.EventThemeChanged, Fields: payload}); err != nil {
		s.warn(ctx, "failed to publish domain event", "event_type", ports.EventThemeChanged, "error", err)
	}
}

func (s *Store) debug(ctx context.Context, msg string, fields ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(ctx, msg, fields...)
	}
}

func (s *Store) warn(ctx context.Context, msg string, fields ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(ctx, msg, fields...)
	}
}

var _ Handle = (*Store)(nil)
