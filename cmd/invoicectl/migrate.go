package main

import (
	"fmt"

	"github.com/SscSPs/invoice_management_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply all pending migrations or revert the latest one",
		Example:   "  invoicectl migrate up\n  invoicectl migrate down",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL is required")
			}
			return d.migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(args[0]), d.logger)
		},
	}
}
