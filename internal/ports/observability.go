package ports

import "context"

// Tracer manages tracing spans. Span names follow the convention
// `<component>.<operation>` (e.g. `remote.generate`, `theme.set`). Adapters
// back onto OpenTelemetry; Inject writes the active span context into an
// outgoing carrier such as HTTP headers.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attributes ...interface{}) (context.Context, Span)
	Inject(ctx context.Context, carrier map[string][]string)
}

// Span represents an active tracing span.
type Span interface {
	SetAttribute(key string, value interface{})
	SetStatus(status SpanStatus, message string)
	End()
}

// SpanStatus provides strongly typed span result semantics.
type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "ok"
	SpanStatusError SpanStatus = "error"
)
