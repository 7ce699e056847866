package logging

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

const defaultBootstrapLimit = 256

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

type pendingEntry struct {
	ctx    context.Context
	level  level
	msg    string
	fields []interface{}
}

// BootstrapLogger buffers entries emitted before configuration decides where
// logs go (console or log file). Attach replays the buffer into the real
// logger; entries logged after Attach are forwarded directly.
type BootstrapLogger struct {
	state  *bootstrapState
	fields []interface{}
}

type bootstrapState struct {
	mu       sync.Mutex
	limit    int
	pending  []pendingEntry
	delegate ports.Logger
}

// NewBootstrapLogger returns a buffering logger holding at most limit entries;
// the oldest entries are dropped first.
func NewBootstrapLogger(limit int) *BootstrapLogger {
	if limit <= 0 {
		limit = defaultBootstrapLimit
	}
	return &BootstrapLogger{state: &bootstrapState{limit: limit}}
}

func (l *BootstrapLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelDebug, msg, fields)
}

func (l *BootstrapLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelInfo, msg, fields)
}

func (l *BootstrapLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelWarn, msg, fields)
}

func (l *BootstrapLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelError, msg, fields)
}

// With returns a child logger sharing the same buffer.
func (l *BootstrapLogger) With(fields ...interface{}) ports.Logger {
	next := append(append([]interface{}{}, l.fields...), fields...)
	return &BootstrapLogger{state: l.state, fields: next}
}

// Attach replays buffered entries into delegate, preserving order, and routes
// subsequent entries straight to it.
func (l *BootstrapLogger) Attach(delegate ports.Logger) {
	if l == nil || delegate == nil {
		return
	}
	l.state.mu.Lock()
	pending := l.state.pending
	l.state.pending = nil
	l.state.delegate = delegate
	l.state.mu.Unlock()

	for _, entry := range pending {
		emit(delegate, entry)
	}
}

// Pending reports how many entries are waiting for a delegate.
func (l *BootstrapLogger) Pending() int {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return len(l.state.pending)
}

func (l *BootstrapLogger) record(ctx context.Context, lvl level, msg string, fields []interface{}) {
	if l == nil || l.state == nil {
		return
	}
	entry := pendingEntry{
		ctx:    ctx,
		level:  lvl,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	}

	l.state.mu.Lock()
	delegate := l.state.delegate
	if delegate == nil {
		if len(l.state.pending) == l.state.limit {
			l.state.pending = l.state.pending[1:]
		}
		l.state.pending = append(l.state.pending, entry)
	}
	l.state.mu.Unlock()

	if delegate != nil {
		emit(delegate, entry)
	}
}

func emit(delegate ports.Logger, entry pendingEntry) {
	switch entry.level {
	case levelDebug:
		delegate.Debug(entry.ctx, entry.msg, entry.fields...)
	case levelWarn:
		delegate.Warn(entry.ctx, entry.msg, entry.fields...)
	case levelError:
		delegate.Error(entry.ctx, entry.msg, entry.fields...)
	default:
		delegate.Info(entry.ctx, entry.msg, entry.fields...)
	}
}

var _ ports.Logger = (*BootstrapLogger)(nil)
