// Package trace times units of work (one tick of the frame loop) and carries
// their identity through context.Context into log lines.
package trace

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey struct{}

var spanCtxKey = ctxKey{}

// Span represents a timed operation.
type Span struct {
	Name      string
	Seq       uint64
	StartTime time.Time
	EndTime   time.Time
	Attrs     []slog.Attr
}

// StartSpan begins a new span and stores it in the returned context.
func StartSpan(ctx context.Context, name string, seq uint64) (context.Context, *Span) {
	s := &Span{
		Name:      name,
		Seq:       seq,
		StartTime: time.Now(),
	}
	return context.WithValue(ctx, spanCtxKey, s), s
}

// FromContext returns the span stored in ctx, if any.
func FromContext(ctx context.Context) (*Span, bool) {
	s, ok := ctx.Value(spanCtxKey).(*Span)
	return s, ok
}

// End marks the span as complete.
func (s *Span) End() {
	s.EndTime = time.Now()
}

// SetAttr sets a span attribute.
func (s *Span) SetAttr(key string, val any) {
	s.Attrs = append(s.Attrs, slog.Any(key, val))
}

// Duration returns span duration, or 0 while the span is open.
func (s *Span) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// LogValue implements slog.LogValuer for structured logging.
func (s *Span) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3+len(s.Attrs))
	attrs = append(attrs,
		slog.String("name", s.Name),
		slog.Uint64("seq", s.Seq),
		slog.Duration("duration", s.Duration()),
	)
	attrs = append(attrs, s.Attrs...)
	return slog.GroupValue(attrs...)
}

// Logger returns the default logger annotated with the span in ctx.
func Logger(ctx context.Context) *slog.Logger {
	s, ok := FromContext(ctx)
	if !ok {
		return slog.Default()
	}
	return slog.Default().With("span", s.Name, "seq", s.Seq)
}
