package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// TraceInfo holds OpenTelemetry-compatible trace context. TraceID is a
// 32-char hex string, SpanID a 16-char hex string.
type TraceInfo struct {
	TraceID  string
	SpanID   string
	ParentID string
	Sampled  bool
}

// WithTrace stores trace info in the context.
func WithTrace(ctx context.Context, trace *TraceInfo) context.Context {
	return context.WithValue(ctx, keyTrace, trace)
}

// TraceFromContext retrieves trace info from the context.
func TraceFromContext(ctx context.Context) (*TraceInfo, bool) {
	trace, ok := ctx.Value(keyTrace).(*TraceInfo)
	return trace, ok && trace != nil
}

// TraceIDFromContext returns the trace ID, or "" when tracing is off.
func TraceIDFromContext(ctx context.Context) string {
	trace, ok := TraceFromContext(ctx)
	if !ok {
		return ""
	}
	return trace.TraceID
}

// NewTraceInfo creates a sampled root trace with fresh random IDs.
func NewTraceInfo() *TraceInfo {
	return &TraceInfo{
		TraceID: randHex(16),
		SpanID:  randHex(8),
		Sampled: true,
	}
}

// NewChildSpan derives a child span from the trace in ctx, or starts a new
// root trace when none exists.
func NewChildSpan(ctx context.Context) *TraceInfo {
	parent, ok := TraceFromContext(ctx)
	if !ok {
		return NewTraceInfo()
	}
	return &TraceInfo{
		TraceID:  parent.TraceID,
		SpanID:   randHex(8),
		ParentID: parent.SpanID,
		Sampled:  parent.Sampled,
	}
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
