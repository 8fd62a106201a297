package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/questly/internal/config"
	"github.com/magabrotheeeer/questly/internal/migrations"
	"github.com/magabrotheeeer/questly/internal/storage/postgresql"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations to PostgreSQL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		logger := setupLogger(cfg.Env)

		if cfg.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is not set")
		}

		st, err := postgresql.New(cmd.Context(), cfg.Storage.PostgresDSN, cfg.Storage.OpTimeout)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer func() { _ = st.Close(cmd.Context()) }()

		if err := migrations.Run(st.DB, cfg.Storage.MigrationsPath); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		logger.Info("migrations applied", slog.String("path", cfg.Storage.MigrationsPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}
