package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/core/reporting"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/goodsign/monday"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceReader
	settings      portssvc.SettingsSvc
	defaultLocale monday.Locale
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock sets the clock that decides which six months the dashboard covers.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Clock = clock
	}
}

// WithReportingDefaultLocale sets the locale used when the user's own locale is unknown.
func WithReportingDefaultLocale(locale string) ReportingServiceOption {
	return func(s *reportingService) {
		s.defaultLocale = reporting.ResolveLocale(locale, monday.LocaleEnUS)
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(invoiceRepo portsrepo.InvoiceReader, settings portssvc.SettingsSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		invoiceRepo:   invoiceRepo,
		settings:      settings,
		defaultLocale: monday.LocaleEnUS,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Dashboard aggregates all invoices of the user as of now.
func (s *reportingService) Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings for dashboard", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	invoices, err := s.invoiceRepo.FindAllInvoicesByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve invoices for dashboard", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	now := s.Now()
	locale := reporting.ResolveLocale(settings.Locale, s.defaultLocale)

	report, err := reporting.Aggregate(invoices, now, locale)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate dashboard", slog.String("user_id", userID))
		return nil, err
	}

	effective := *settings
	effective.Locale = string(locale)
	response := dto.ToDashboardResponse(&report, effective, now)

	s.LogInfo(ctx, "Dashboard generated successfully",
		slog.String("user_id", userID),
		slog.Int("invoice_count", len(invoices)),
		slog.String("locale", string(locale)))
	return &response, nil
}
