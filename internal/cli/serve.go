package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-file-search/api"
	"github.com/gcbaptista/go-file-search/config"
	"github.com/gcbaptista/go-file-search/internal/engine"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 10 * time.Second

func newServeCmd(params RunParams) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API. With --root, indexing of that directory starts
immediately; otherwise the index stays empty until POST /runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd, params)
			if err != nil {
				return err
			}

			if settings.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := settings.Server.Addr()
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}

			return Serve(ctx, listener, *settings, root, logger)
		},
	}

	cmd.Flags().StringP("host", "H", "", "Host to listen on")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on")
	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to index at startup")

	return cmd
}

// Serve runs the HTTP API on listener until ctx is done, then shuts down
// gracefully. A non-empty root is indexed as soon as the engine exists.
func Serve(ctx context.Context, listener net.Listener, settings config.Settings, root string, logger *slog.Logger) error {
	eng, err := engine.NewEngine(settings, logger)
	if err != nil {
		_ = listener.Close()
		return err
	}

	if root != "" {
		runID, err := eng.Start(root)
		if err != nil {
			eng.Close()
			_ = listener.Close()
			return err
		}
		logger.Info("Indexing at startup", "run_id", runID, "root", root)
	}

	srv := &http.Server{
		Handler:           api.NewRouter(eng, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening (HTTP)", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		// Closing the engine ends open event streams so Shutdown can finish.
		eng.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
