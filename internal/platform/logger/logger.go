// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/scry-decks/internal/config"
)

// Setup initializes the application's logging system from cfg. It creates a
// structured JSON logger on stdout with the configured level and sets it as
// the default logger.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger, nil
}

// New creates a JSON logger writing to w at the named level.
// An unknown level falls back to info with a warning on stderr.
func New(w io.Writer, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ParseLevel maps a case-insensitive level name to a slog.Level. It reports
// false, and returns slog.LevelInfo, for unknown names.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
