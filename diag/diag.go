// Package diag is the diagnostic logging facility. It is a thin wrapper over
// log/slog so callers inject a *Logger instead of reaching for a global.
package diag

import (
	"log/slog"
	"os"
)

// Logger ...
type Logger struct {
	*slog.Logger
}

// New wraps handler. A nil handler gets a text handler on stderr at Info.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// Text ...
func Text(level slog.Level) *Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// JSON ...
func JSON(level slog.Level) *Logger {
	return New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// discardLevel sits above every level a caller can log at.
const discardLevel = slog.Level(1 << 10)

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: discardLevel,
	}))
}
