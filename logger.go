package viewdb

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with viewdb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStore adds a store field to the logger.
func (l *Logger) WithStore(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", id.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSelect logs a selection pass over a store or a view.
func (l *Logger) LogSelect(ctx context.Context, source string, scanned, matched int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "select failed",
			"source", source,
			"scanned", scanned,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "select completed",
			"source", source,
			"scanned", scanned,
			"matched", matched,
		)
	}
}

// LogNarrow logs the narrowing of a mutable view.
func (l *Logger) LogNarrow(ctx context.Context, before, after int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "narrow failed",
			"before", before,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "narrow completed",
			"before", before,
			"after", after,
			"released", before-after,
		)
	}
}

// LogViolation logs a rejected access.
func (l *Logger) LogViolation(ctx context.Context, op string, err error) {
	l.WarnContext(ctx, "access rejected",
		"op", op,
		"error", err,
	)
}

// LogClose logs the destruction of a store.
func (l *Logger) LogClose(ctx context.Context, size int, liveBorrows bool) {
	if liveBorrows {
		l.WarnContext(ctx, "store closed with live views",
			"size", size,
		)
	} else {
		l.InfoContext(ctx, "store closed",
			"size", size,
		)
	}
}

// LogDrain logs a consuming iteration.
func (l *Logger) LogDrain(ctx context.Context, size int) {
	l.InfoContext(ctx, "store drained",
		"size", size,
	)
}
