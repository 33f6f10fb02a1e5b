package services

import (
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/platform/config"
	"github.com/SscSPs/invoice_management_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// sheetsWriter may be nil, which disables Google Sheets export. tracker may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sheetsWriter portsrepo.SheetsWriter, tracker utils.EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(
		repos.UserRepo,
		WithUserInvoiceRepository(repos.InvoiceRepo),
	)
	container.Settings = NewSettingsService(repos.SettingsRepo, cfg.DefaultLocale)

	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		WithInvoiceEventTracker(tracker),
	)
	container.Reporting = NewReportingService(
		repos.InvoiceRepo,
		container.Settings,
		WithReportingDefaultLocale(cfg.DefaultLocale),
	)

	spreadsheetOpts := []SpreadsheetServiceOption{WithSpreadsheetEventTracker(tracker)}
	if sheetsWriter != nil {
		spreadsheetOpts = append(spreadsheetOpts, WithSheetsWriter(sheetsWriter))
	}
	container.Spreadsheet = NewSpreadsheetService(repos.InvoiceRepo, spreadsheetOpts...)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
