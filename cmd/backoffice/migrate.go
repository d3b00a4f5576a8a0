package main

import (
	"log/slog"

	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
	"github.com/SscSPs/accounting_backoffice/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *slog.Logger) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps, logger)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 rolls back all)")

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}
