package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for request-scoped loggers.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying log. The HTTP layer
// attaches a logger with request fields here so downstream code logs with
// the same request identity.
func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger stored by ContextWithLogger, or a no-op
// logger when the context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}
