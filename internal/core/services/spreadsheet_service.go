package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/spreadsheet"
	"github.com/SscSPs/invoice_management_app/internal/utils"
)

// MaxImportInvoices caps how many invoices a single import may create.
const MaxImportInvoices = 5000

type spreadsheetService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	sheets      portsrepo.SheetsWriter
	tracker     utils.EventTracker
}

// SpreadsheetServiceOption is a functional option for configuring the spreadsheet service
type SpreadsheetServiceOption func(*spreadsheetService)

// WithSheetsWriter enables export to Google Sheets.
func WithSheetsWriter(w portsrepo.SheetsWriter) SpreadsheetServiceOption {
	return func(s *spreadsheetService) {
		s.sheets = w
	}
}

// WithSpreadsheetClock sets the clock used for audit timestamps of imported invoices.
func WithSpreadsheetClock(clock func() time.Time) SpreadsheetServiceOption {
	return func(s *spreadsheetService) {
		s.Clock = clock
	}
}

// WithSpreadsheetEventTracker sets the analytics tracker notified about imports.
func WithSpreadsheetEventTracker(tracker utils.EventTracker) SpreadsheetServiceOption {
	return func(s *spreadsheetService) {
		s.tracker = tracker
	}
}

// NewSpreadsheetService creates a new spreadsheet service with the provided options
func NewSpreadsheetService(repo portsrepo.InvoiceRepositoryWithTx, options ...SpreadsheetServiceOption) portssvc.SpreadsheetSvc {
	svc := &spreadsheetService{invoiceRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SpreadsheetSvc = (*spreadsheetService)(nil)

// exportRows loads every invoice of the user, oldest issue date first.
func (s *spreadsheetService) exportRows(ctx context.Context, userID string) ([][]string, int, error) {
	invoices, err := s.invoiceRepo.FindAllInvoicesByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoices for export", slog.String("user_id", userID))
		return nil, 0, fmt.Errorf("failed to load invoices: %w", err)
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].IssueDate.Equal(invoices[j].IssueDate) {
			return invoices[i].IssueDate.Before(invoices[j].IssueDate)
		}
		return invoices[i].CreatedAt.Before(invoices[j].CreatedAt)
	})
	return spreadsheet.Rows(invoices), len(invoices), nil
}

func (s *spreadsheetService) ExportInvoices(ctx context.Context, userID string, format spreadsheet.Format, w io.Writer) error {
	rows, count, err := s.exportRows(ctx, userID)
	if err != nil {
		return err
	}
	if err := spreadsheet.Encode(w, format, rows); err != nil {
		s.LogError(ctx, err, "Failed to encode export", slog.String("format", string(format)))
		return err
	}
	s.LogInfo(ctx, "Invoices exported",
		slog.String("user_id", userID),
		slog.String("format", string(format)),
		slog.Int("invoice_count", count))
	return nil
}

func (s *spreadsheetService) ImportInvoices(ctx context.Context, userID string, format spreadsheet.Format, r io.Reader, dryRun bool) (*dto.ImportResultResponse, error) {
	rows, err := spreadsheet.Decode(r, format)
	if err != nil {
		return nil, err
	}

	invoices, rejected, err := spreadsheet.Normalize(rows, userID, s.Now())
	if err != nil {
		return nil, err
	}
	if len(invoices) > MaxImportInvoices {
		return nil, fmt.Errorf("%w: at most %d invoices can be imported at once, got %d",
			apperrors.ErrValidation, MaxImportInvoices, len(invoices))
	}

	result := &dto.ImportResultResponse{
		DryRun:     dryRun,
		InvoiceIDs: make([]string, 0, len(invoices)),
		Rejected:   make([]dto.ImportRejectionResponse, 0, len(rejected)),
	}
	for _, re := range rejected {
		result.Rejected = append(result.Rejected, dto.ImportRejectionResponse{Row: re.Row, Reference: re.Reference, Reason: re.Reason})
	}

	if !dryRun && len(invoices) > 0 {
		if err := s.saveAll(ctx, invoices); err != nil {
			s.LogError(ctx, err, "Failed to save imported invoices", slog.String("user_id", userID))
			return nil, err
		}
	}

	for _, inv := range invoices {
		result.InvoiceIDs = append(result.InvoiceIDs, inv.InvoiceID)
	}
	if !dryRun {
		result.Imported = len(invoices)
		if s.tracker != nil {
			s.tracker.Enqueue(userID, "invoices_imported", map[string]any{
				"format":   string(format),
				"imported": len(invoices),
				"rejected": len(rejected),
			})
		}
	}

	s.LogInfo(ctx, "Spreadsheet import processed",
		slog.String("user_id", userID),
		slog.Bool("dry_run", dryRun),
		slog.Int("valid", len(invoices)),
		slog.Int("rejected", len(rejected)))
	return result, nil
}

// saveAll stores every invoice in one transaction.
func (s *spreadsheetService) saveAll(ctx context.Context, invoices []domain.Invoice) (err error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := s.invoiceRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back import transaction")
			}
		}
	}()

	if err = s.invoiceRepo.SaveInvoicesInTx(ctx, tx, invoices); err != nil {
		return err
	}
	if err = s.invoiceRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}

func (s *spreadsheetService) ExportToGoogleSheet(ctx context.Context, userID string, req dto.GoogleSheetExportRequest) (*dto.GoogleSheetExportResponse, error) {
	if s.sheets == nil {
		return nil, fmt.Errorf("google sheets export: %w", apperrors.ErrNotConfigured)
	}
	spreadsheetID := strings.TrimSpace(req.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required", apperrors.ErrValidation)
	}
	sheetName := strings.TrimSpace(req.SheetName)
	if sheetName == "" {
		sheetName = spreadsheet.SheetName
	}

	rows, count, err := s.exportRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.sheets.WriteTable(ctx, spreadsheetID, sheetName, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to write google sheet",
			slog.String("user_id", userID),
			slog.String("spreadsheet_id", spreadsheetID))
		return nil, fmt.Errorf("failed to write google sheet: %w", err)
	}

	s.LogInfo(ctx, "Invoices exported to google sheets",
		slog.String("user_id", userID),
		slog.String("spreadsheet_id", spreadsheetID),
		slog.Int("invoice_count", count))
	return &dto.GoogleSheetExportResponse{
		SpreadsheetID: spreadsheetID,
		UpdatedRange:  updated,
		Rows:          len(rows),
	}, nil
}
