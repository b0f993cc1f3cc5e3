package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a directory of decks over HTTP",
	Long: `Serve hosts the JSON decks in a directory so viewers on other machines can
load them by URL, e.g. flashdeck view http://host:8080/decks/networking.
Responses are sent with Cache-Control: no-store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = config.GetDeckLibraryPath()
		}
		addr, _ := cmd.Flags().GetString("addr")
		logger := stderrLogger(cfg)

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(dir, logger).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving decks", slog.String("dir", dir), slog.String("addr", addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("dir", "", "Directory of JSON decks (default: deck library)")
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
