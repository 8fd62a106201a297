package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/questly/internal/app/questly"
	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/lib/sl"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the Questly HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		logger := setupLogger(cfg.Env)

		logger.Info("starting questly", slog.String("env", cfg.Env))
		logger.Debug("config loaded", slog.String("config", cfg.String()))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := questly.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize app", sl.Err(err))
			return err
		}

		if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("app stopped with error", sl.Err(err))
			return err
		}

		logger.Info("questly stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
