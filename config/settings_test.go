package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), *settings)
	assert.Equal(t, "127.0.0.1:8080", settings.Server.Addr())
	assert.NoError(t, ValidateSettings(settings))
}

func TestLoadSettings_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FILE_SEARCH_SERVER_PORT", "9090")
	t.Setenv("FILE_SEARCH_INDEXING_PROGRESS_INTERVAL", "50")
	t.Setenv("FILE_SEARCH_LOG_LEVEL", " DEBUG ")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 9090, settings.Server.Port)
	assert.Equal(t, 50, settings.Indexing.ProgressInterval)
	assert.Equal(t, "debug", settings.Log.Level)
}

func TestLoadSettingsWithFlags_FlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("FILE_SEARCH_SERVER_PORT", "9090")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.Int("limit", 0, "")
	require.NoError(t, flags.Parse([]string{"--port", "7070", "--limit", "25"}))

	settings, err := LoadSettingsWithFlags(flags)
	require.NoError(t, err)

	assert.Equal(t, 7070, settings.Server.Port)
	assert.Equal(t, 25, settings.Search.DisplayLimit)
	// Unset flags fall through to defaults
	assert.Equal(t, DefaultCacheSize, settings.Search.CacheSize)
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr string
	}{
		{"defaults are valid", func(s *Settings) {}, ""},
		{"port out of range", func(s *Settings) { s.Server.Port = 70000 }, "server port"},
		{"zero progress interval", func(s *Settings) { s.Indexing.ProgressInterval = 0 }, "progress interval"},
		{"zero display limit", func(s *Settings) { s.Search.DisplayLimit = 0 }, "display limit"},
		{"negative cache size", func(s *Settings) { s.Search.CacheSize = -1 }, "cache size"},
		{"cache disabled is valid", func(s *Settings) { s.Search.CacheSize = 0 }, ""},
		{"unknown log level", func(s *Settings) { s.Log.Level = "verbose" }, "log level"},
		{"unknown log format", func(s *Settings) { s.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := ValidateSettings(&s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
