package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// newRootCommand creates the backoffice CLI with all subcommands registered.
func newRootCommand(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Accounting back-office API server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand(logger))
	rootCmd.AddCommand(newMigrateCommand(logger))

	return rootCmd
}
