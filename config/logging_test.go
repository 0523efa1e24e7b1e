package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogSettings{Level: "info", Format: "json"}, &buf)
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = NewLogger(LogSettings{Level: "warn", Format: "text"}, &buf)
	logger.Info("suppressed")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestLog_WritesResolvedSettings(t *testing.T) {
	var buf bytes.Buffer
	s := DefaultSettings()
	Log(&s, NewLogger(s.Log, &buf))
	assert.Contains(t, buf.String(), "addr=127.0.0.1:8080")
	assert.Contains(t, buf.String(), "display_limit=500")
}
