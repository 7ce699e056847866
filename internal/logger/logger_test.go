package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"component": "controller", "layer": "application"})
	log.Info(context.Background(), "submission resolved", "phase", "success", "cards", 3)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "submission resolved", entry["message"])
	require.Equal(t, "controller", entry["component"])
	require.Equal(t, "application", entry["layer"])
	require.Equal(t, "success", entry["phase"])
	require.EqualValues(t, 3, entry["cards"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesCorrelationAndCause(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "corr-1")
	log.With("component", "theme_store").Error(ctx, "persist theme failed", "error", errors.New("disk full"))

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "corr-1", entry["correlation_id"])
	require.Equal(t, "theme_store", entry["component"])
	require.Equal(t, "disk full", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "flashgenie.log")
	f, err := OpenFile(path)
	require.NoError(t, err)

	log, err := New(Options{Writer: f})
	require.NoError(t, err)
	log.Warn(context.Background(), "written to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
}
