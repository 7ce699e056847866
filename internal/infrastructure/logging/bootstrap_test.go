package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapLoggerReplaysInOrder(t *testing.T) {
	boot := NewBootstrapLogger(0)
	ctx := context.Background()

	boot.Debug(ctx, "reading config", "path", "/tmp/config.yaml")
	boot.With("component", "config").Warn(ctx, "config file missing")
	assert.Equal(t, 2, boot.Pending())

	var buf bytes.Buffer
	delegate, err := New(Options{Writer: &buf, Level: "debug", Format: FormatJSON})
	require.NoError(t, err)

	boot.Attach(delegate)
	assert.Equal(t, 0, boot.Pending())

	boot.Error(ctx, "after attach")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "reading config", lines[0]["msg"])
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "config file missing", lines[1]["msg"])
	assert.Equal(t, "config", lines[1]["component"])
	assert.Equal(t, "after attach", lines[2]["msg"])
}

func TestBootstrapLoggerDropsOldestBeyondLimit(t *testing.T) {
	boot := NewBootstrapLogger(2)
	ctx := context.Background()

	boot.Info(ctx, "one")
	boot.Info(ctx, "two")
	boot.Info(ctx, "three")
	assert.Equal(t, 2, boot.Pending())

	var buf bytes.Buffer
	delegate, err := New(Options{Writer: &buf, Format: FormatJSON})
	require.NoError(t, err)
	boot.Attach(delegate)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "two", lines[0]["msg"])
	assert.Equal(t, "three", lines[1]["msg"])
}
