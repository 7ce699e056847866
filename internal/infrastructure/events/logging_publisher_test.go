package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	logginginfra "github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer) ports.Logger {
	t.Helper()
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     "info",
		Format:    logginginfra.FormatJSON,
		Layer:     "test",
		Component: "publisher",
	})
	require.NoError(t, err)
	return logger
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf))

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, ports.Event{
		Type:   ports.EventGenerationSubmitted,
		Fields: map[string]interface{}{"topic": "photosynthesis"},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, ports.EventGenerationSubmitted, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "photosynthesis", entry["topic"])
}

func TestLoggingPublisherLogsFailuresAsWarnings(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf))

	require.NoError(t, publisher.Publish(context.Background(), ports.Event{Type: ports.EventGenerationFailed}))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf))

	var typed, wildcard []string
	sub, err := publisher.Subscribe(ports.EventThemeChanged, func(_ context.Context, e ports.DomainEvent) error {
		typed = append(typed, e.EventType())
		return nil
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(AllEvents, func(_ context.Context, e ports.DomainEvent) error {
		wildcard = append(wildcard, e.EventType())
		return errors.New("handler boom")
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, ports.Event{Type: ports.EventThemeChanged}))
	require.NoError(t, publisher.Publish(ctx, ports.Event{Type: ports.EventGenerationEmpty}))

	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(ctx, ports.Event{Type: ports.EventThemeChanged}))

	require.Equal(t, []string{ports.EventThemeChanged}, typed)
	require.Len(t, wildcard, 3)
	require.Equal(t, 3, strings.Count(buf.String(), "event handler failed"))
}

func TestLoggingPublisherToleratesNilLogger(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)
	called := false
	_, err := publisher.Subscribe(ports.EventGenerationSucceeded, func(context.Context, ports.DomainEvent) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), ports.Event{Type: ports.EventGenerationSucceeded}))
	require.True(t, called)
}
