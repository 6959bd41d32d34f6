// Package logging configures structured logging: colored text with tint for
// terminals, or JSON for log collectors.
//
// Usage:
//
//	logger := logging.Setup("debug", "text")
//
// Levels: debug, info, warn, error (default: info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup builds a logger writing to stderr, installs it as the slog default and returns it.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w in the given format ("json" or tinted text).
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
