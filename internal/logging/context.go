package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // a single unexported key value is the standard context-key idiom
var loggerKey = contextKey{}

// WithLogger attaches logger to ctx, returning the derived context. A nil
// ctx is treated as context.Background().
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger attached by WithLogger, falling back to
// Default() if ctx is nil or carries none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	logger, ok := ctx.Value(loggerKey).(*log.Logger)
	if !ok || logger == nil {
		return Default()
	}
	return logger
}
