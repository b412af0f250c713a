package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var loggerKey contextKey

// WithLogger returns a copy of ctx carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or nil if there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// slog.Default() when ctx carries no logger.
func FromContextOrDefault(ctx context.Context, defaultLogger ...*slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	if len(defaultLogger) > 0 && defaultLogger[0] != nil {
		return defaultLogger[0]
	}
	return slog.Default()
}
