// Package config provides configuration structures for the file search service.
// Settings are resolved from defaults, an optional .env file, FILE_SEARCH_*
// environment variables and CLI flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by LoadSettings.
const EnvPrefix = "FILE_SEARCH"

// Default values
const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 8080
	DefaultProgressInterval = 500
	DefaultDisplayLimit     = 500
	DefaultCacheSize        = 256
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

// ServerSettings configures the HTTP API
type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IndexingSettings configures indexing runs
type IndexingSettings struct {
	ProgressInterval int `mapstructure:"progress_interval"` // Indexed items between progress events
}

// SearchSettings configures query answering and presentation
type SearchSettings struct {
	DisplayLimit int `mapstructure:"display_limit"` // Maximum hits rendered by presentation layers
	CacheSize    int `mapstructure:"cache_size"`    // Query result cache entries; 0 disables caching
}

// LogSettings configures structured logging
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// Settings application settings
type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Indexing IndexingSettings `mapstructure:"indexing"`
	Search   SearchSettings   `mapstructure:"search"`
	Log      LogSettings      `mapstructure:"log"`
}

// DefaultSettings returns settings populated with default values.
func DefaultSettings() Settings {
	return Settings{
		Server:   ServerSettings{Host: DefaultHost, Port: DefaultPort},
		Indexing: IndexingSettings{ProgressInterval: DefaultProgressInterval},
		Search:   SearchSettings{DisplayLimit: DefaultDisplayLimit, CacheSize: DefaultCacheSize},
		Log:      LogSettings{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// flagBindings maps config keys to CLI flag names.
var flagBindings = map[string]string{
	"server.host":                "host",
	"server.port":                "port",
	"indexing.progress_interval": "progress-interval",
	"search.display_limit":       "limit",
	"search.cache_size":          "cache-size",
	"log.level":                  "log-level",
	"log.format":                 "log-format",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// Flags absent from the FlagSet are ignored.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("indexing.progress_interval", defaults.Indexing.ProgressInterval)
	v.SetDefault("search.display_limit", defaults.Search.DisplayLimit)
	v.SetDefault("search.cache_size", defaults.Search.CacheSize)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	// Environment variables: FILE_SEARCH_SERVER_PORT, FILE_SEARCH_LOG_LEVEL, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	settings.Log.Level = strings.ToLower(strings.TrimSpace(settings.Log.Level))
	settings.Log.Format = strings.ToLower(strings.TrimSpace(settings.Log.Format))

	return &settings, nil
}

// ValidateSettings checks that every setting is usable.
func ValidateSettings(s *Settings) error {
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 0 and 65535, got: %d", s.Server.Port)
	}
	if s.Indexing.ProgressInterval <= 0 {
		return errors.New("indexing progress interval must be positive")
	}
	if s.Search.DisplayLimit <= 0 {
		return errors.New("search display limit must be positive")
	}
	if s.Search.CacheSize < 0 {
		return errors.New("search cache size cannot be negative")
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log level must be one of debug, info, warn, error, got: " + s.Log.Level)
	}

	switch s.Log.Format {
	case "text", "json":
	default:
		return errors.New("log format must be 'text' or 'json', got: " + s.Log.Format)
	}

	return nil
}
