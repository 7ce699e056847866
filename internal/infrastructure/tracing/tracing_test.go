package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

func TestTracerRecordsSpanAttributesAndStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := New(provider)

	ctx := ports.WithCorrelationID(context.Background(), "corr-9")
	_, span := tracer.StartSpan(ctx, "remote.generate", "topic", "cells", "attempt", 1, 42, "skipped")
	span.SetAttribute("cards", 3)
	span.SetStatus(ports.SpanStatusError, "boom")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "remote.generate", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "cells", attrs["topic"].AsString())
	assert.Equal(t, int64(1), attrs["attempt"].AsInt64())
	assert.Equal(t, int64(3), attrs["cards"].AsInt64())
	assert.Equal(t, "corr-9", attrs["correlation_id"].AsString())
	assert.Len(t, attrs, 4)
}

func TestTracerInjectWritesTraceparent(t *testing.T) {
	provider := sdktrace.NewTracerProvider()
	tracer := New(provider)

	ctx, span := tracer.StartSpan(context.Background(), "remote.generate")
	defer span.End()

	carrier := map[string][]string{}
	tracer.Inject(ctx, carrier)
	assert.NotEmpty(t, carrier["Traceparent"])
}

func TestSetupNoopAndStdout(t *testing.T) {
	tracer, shutdown, err := Setup(context.Background(), Options{Enabled: false})
	require.NoError(t, err)
	_, span := tracer.StartSpan(context.Background(), "noop")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	buf := &bytes.Buffer{}
	tracer, shutdown, err = Setup(context.Background(), Options{Enabled: true, Exporter: ExporterStdout, Writer: buf})
	require.NoError(t, err)
	_, span = tracer.StartSpan(context.Background(), "theme.set")
	span.SetStatus(ports.SpanStatusOK, "")
	span.End()
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "theme.set")

	_, _, err = Setup(context.Background(), Options{Enabled: true, Exporter: "jaeger"})
	assert.ErrorContains(t, err, "unsupported exporter")
}
