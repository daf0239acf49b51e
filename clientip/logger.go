package clientip

import (
	"context"
)

// Logger records resolution events emitted by Resolver.
//
// Implementations should be safe for concurrent use, as a single Resolver
// instance is typically shared across many goroutines.
//
// The provided context comes from the inbound HTTP request and can carry
// tracing metadata (for example, trace or span IDs).
//
// The interface intentionally mirrors slog's context-aware signatures, so
// *slog.Logger can be used directly without an adapter.
type Logger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
}

// noopLogger is the default Logger implementation when logging is not
// explicitly configured.
type noopLogger struct{}

func (noopLogger) DebugContext(context.Context, string, ...any) {}

func (noopLogger) WarnContext(context.Context, string, ...any) {}
