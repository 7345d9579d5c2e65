package logger

import (
	"context"
	"log/slog"
)

// Unexported struct key so no other package can collide with or replace the
// request logger.
type requestLoggerKey struct{}

// With derives a child logger carrying the given fields and stores it on the
// context. Request-scoped attributes such as the trace id follow the request
// down the call stack this way.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, requestLoggerKey{}, From(ctx).With(fields...))
}

// From returns the request logger stored on ctx, or the process-wide logger
// when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
