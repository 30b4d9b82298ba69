// Package logger configures cmd/gridotbench's structured logging: a single
// *slog.Logger, JSON-formatted, level-selectable. The core solver packages
// never log; this is the benchmark CLI's only logging surface.
package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog.Logger writing to stderr at the given level
// (debug, info, warn, error; anything else falls back to info).
func New(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})
	return slog.New(handler)
}
