package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a slog.Logger writing to w according to s.
func NewLogger(s LogSettings, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(s.Level)}
	if s.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log logs the resolved settings
func Log(s *Settings, logger *slog.Logger) {
	logger.Info("Config: server", "addr", s.Server.Addr())
	logger.Info("Config: indexing.progress_interval", "value", s.Indexing.ProgressInterval)
	logger.Info("Config: search", "display_limit", s.Search.DisplayLimit, "cache_size", s.Search.CacheSize)
	logger.Debug("Config: log", "level", s.Log.Level, "format", s.Log.Format)
}
