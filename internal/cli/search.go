package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-file-search/internal/engine"
	"github.com/gcbaptista/go-file-search/services"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	extensions string // manual list, e.g. "py, .png"
	fileType   string // single catalog label
}

func newSearchCmd(params RunParams) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search ROOT [QUERY]",
		Short: "Index ROOT and print the entries whose name contains QUERY",
		Long: `Index ROOT and print the entries whose name contains QUERY, ignoring case.

Without QUERY, --ext lists every entry carrying one of the given extensions.

Examples:
  file-search search ~/projects report
  file-search search ~/projects main --ext "py, go"
  file-search search ~/photos --ext jpg,png --limit 50`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 2 {
				query = args[1]
			}
			if strings.TrimSpace(query) == "" && strings.TrimSpace(opts.extensions) == "" {
				return errors.New("nothing to search for: give a QUERY or --ext")
			}

			settings, logger, err := setup(cmd, params)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng, err := engine.NewEngine(*settings, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			return runSearch(ctx, cmd, eng, args[0], query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.extensions, "ext", "e", "", `Comma-separated extensions, e.g. "py, .png"`)
	cmd.Flags().StringVarP(&opts.fileType, "type", "t", "", "Single extension label, used when --ext is empty")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of results shown")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, root, query string, opts searchOptions) error {
	if _, err := indexRoot(ctx, eng, root, cmd.ErrOrStderr()); err != nil {
		return err
	}

	result := eng.Search(services.SearchQuery{
		QueryString: query,
		Extensions:  opts.extensions,
		Type:        opts.fileType,
	})

	out := cmd.OutOrStdout()
	printResults(out, result, isTerminal(out))
	return nil
}

func newExtensionsCmd(params RunParams) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions ROOT",
		Short: "Index ROOT and print every extension label with its count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd, params)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng, err := engine.NewEngine(*settings, logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			if _, err := indexRoot(ctx, eng, args[0], cmd.ErrOrStderr()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printExtensions(out, eng.Extensions(), eng.ExtensionCounts(), isTerminal(out))
			return nil
		},
	}
}
