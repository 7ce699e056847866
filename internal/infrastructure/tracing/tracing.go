// Package tracing adapts OpenTelemetry to the ports.Tracer contract.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

const tracerName = "flashgenie"

// Exporter names accepted by Setup.
const (
	ExporterNoop   = "noop"
	ExporterStdout = "stdout"
)

// Options controls tracer provider construction.
type Options struct {
	Enabled  bool
	Exporter string
	// Writer receives stdout-exporter output. Defaults to os.Stderr so spans
	// never interleave with command output.
	Writer io.Writer
}

// Setup installs the global tracer provider and returns the adapter together
// with a shutdown function that flushes pending spans.
func Setup(ctx context.Context, opts Options) (*Tracer, func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }
	otel.SetTextMapPropagator(propagation.TraceContext{})

	if !opts.Enabled || opts.Exporter == "" || opts.Exporter == ExporterNoop {
		provider := noop.NewTracerProvider()
		otel.SetTracerProvider(provider)
		return New(provider), noopShutdown, nil
	}

	if opts.Exporter != ExporterStdout {
		return nil, nil, fmt.Errorf("unsupported exporter: %s", opts.Exporter)
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(writer))
	if err != nil {
		return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return New(provider), provider.Shutdown, nil
}

// Tracer implements ports.Tracer on an OpenTelemetry provider.
type Tracer struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// New wraps provider. A nil provider yields a no-op tracer.
func New(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = noop.NewTracerProvider()
	}
	return &Tracer{
		tracer:     provider.Tracer(tracerName),
		propagator: propagation.TraceContext{},
	}
}

// StartSpan starts a span named name. Attributes are key/value pairs; non-string
// keys are skipped.
func (t *Tracer) StartSpan(ctx context.Context, name string, attributes ...interface{}) (context.Context, ports.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attributes)...))
	if id := ports.GetCorrelationID(ctx); id != "" {
		span.SetAttributes(attribute.String("correlation_id", id))
	}
	return ctx, &otelSpan{span: span}
}

// Inject writes the W3C trace context of the active span into carrier.
func (t *Tracer) Inject(ctx context.Context, carrier map[string][]string) {
	if ctx == nil || carrier == nil {
		return
	}
	t.propagator.Inject(ctx, propagation.HeaderCarrier(carrier))
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) SetAttribute(key string, value interface{}) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *otelSpan) SetStatus(status ports.SpanStatus, message string) {
	if status == ports.SpanStatusError {
		s.span.SetStatus(codes.Error, message)
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

func (s *otelSpan) End() {
	s.span.End()
}

func toAttributes(pairs []interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok || key == "" {
			continue
		}
		attrs = append(attrs, toAttribute(key, pairs[i+1]))
	}
	return attrs
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

var _ ports.Tracer = (*Tracer)(nil)
