package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/deck"
	"github.com/arcanaland/flashdeck/internal/logging"
	"github.com/arcanaland/flashdeck/internal/source"
	"github.com/arcanaland/flashdeck/internal/validator"
)

// sourceFrom picks the card source: positional argument, then --src, then config
func sourceFrom(args []string, flag string, cfg *config.Config) string {
	src := flag
	if len(args) > 0 && args[0] != "" {
		src = args[0]
	}
	if src == "" {
		src = cfg.DefaultSource
	}
	return config.ResolveSource(src)
}

func stderrLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
}

// fileLogger logs to the flashdeck log file; the returned closer releases it
func fileLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	f, err := logging.OpenFile(config.GetLogFilePath())
	if err != nil {
		return nil, nil, err
	}
	return logging.New(cfg.LogLevel, cfg.LogFormat, f), f, nil
}

func newController(cfg *config.Config, logger *slog.Logger, opts ...deck.Option) *deck.Controller {
	opts = append([]deck.Option{
		deck.WithLogger(logger),
		deck.WithTransition(cfg.Transition()),
		deck.WithValidator(validator.NewValidator(validator.Options{StrictReadTime: cfg.StrictReadTime})),
	}, opts...)
	return deck.NewController(opts...)
}

// loadDeck fetches src and loads it into a fresh controller
func loadDeck(ctx context.Context, cfg *config.Config, logger *slog.Logger, src string) (*deck.Controller, deck.Report, error) {
	records, err := source.NewFetcher().Fetch(ctx, src)
	if err != nil {
		return nil, deck.Report{}, err
	}

	ctrl := newController(cfg, logger, deck.WithTransition(0))
	report, err := ctrl.Load(records)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", src, err)
	}
	ctrl.StopTimer()
	return ctrl, report, nil
}
