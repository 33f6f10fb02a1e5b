package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/platform/config"
	"github.com/SscSPs/invoice_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_management_app/pkg/database"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// deps are the collaborators the commands need; tests replace them.
type deps struct {
	logger       *slog.Logger
	loadConfig   func() (*config.Config, error)
	openServices func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error)
	migrate      func(databaseURL, migrationsPath string, direction database.MigrationDirection, logger *slog.Logger) error
}

func defaultDeps(logger *slog.Logger) deps {
	return deps{
		logger:     logger,
		loadConfig: config.LoadConfig,
		openServices: func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error) {
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
			}
			// No Sheets writer and no analytics from the command line.
			container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), nil, nil)
			return container, pool.Close, nil
		},
		migrate: database.RunMigrations,
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Administrative tasks for the invoice management backend",
		Long: `invoicectl applies schema migrations and imports, exports or summarizes
the invoices of a single user directly against the database.

Configuration is read from the same environment variables (or .env file) as
the API server, most importantly PGSQL_URL and MIGRATIONS_PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(d),
		newImportCmd(d),
		newExportCmd(d),
		newReportCmd(d),
	)
	return root
}

// withServices loads configuration, opens the service container and runs fn.
func withServices(ctx context.Context, d deps, fn func(*portssvc.ServiceContainer) error) error {
	cfg, err := d.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	container, closeFn, err := d.openServices(ctx, cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(container)
}
