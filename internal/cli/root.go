// Package cli provides the file-search command line: an HTTP server and
// one-shot commands that index a directory and print what they find.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gcbaptista/go-file-search/config"
)

// RunParams contains dependencies shared by every command
type RunParams struct {
	LoadSettings  func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings func(*config.Settings) error
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
	}
}

// NewRootCmd creates the root command with production dependencies.
func NewRootCmd(programName, version string) *cobra.Command {
	return NewRootCmdWithParams(programName, version, DefaultRunParams())
}

// NewRootCmdWithParams creates the root command with the given dependencies.
func NewRootCmdWithParams(programName, version string, params RunParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   programName,
		Short: "Filename search over a directory tree",
		Long: `Indexes every file and folder under a directory by name and answers
case-insensitive substring queries, optionally filtered by extension.

Results are ordered by name length, then name.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.SetVersionTemplate(`{{.Version}}
`)

	RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(
		newServeCmd(params),
		newSearchCmd(params),
		newExtensionsCmd(params),
	)

	return cmd
}

// RegisterFlags registers the flags shared by every command on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.Int("progress-interval", 0, "Indexed items between progress reports")
	flags.Int("cache-size", 0, "Query result cache entries (0 disables caching)")
}

// setup resolves settings for cmd and builds a logger writing to its stderr.
func setup(cmd *cobra.Command, params RunParams) (*config.Settings, *slog.Logger, error) {
	settings, err := params.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(settings.Log, cmd.ErrOrStderr())
	config.Log(settings, logger)
	return settings, logger, nil
}
