// Package ctxlog carries a slog.Logger through context.Context.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
)

// DebugEnv turns on debug logging when set to a non-empty value.
const DebugEnv = "PIC_TO_GITHUB_DEBUG"

type key struct{}

var loggerKey = key{}

// New builds the stderr text logger; debug selects the debug level,
// otherwise only warnings and errors are written.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to a logger that
// discards everything.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
