package services

import (
	"context"
	"io"

	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/spreadsheet"
)

// SpreadsheetSvc moves invoices in and out of spreadsheets.
type SpreadsheetSvc interface {
	// ExportInvoices writes all of the user's invoices to w in the given format.
	ExportInvoices(ctx context.Context, userID string, format spreadsheet.Format, w io.Writer) error

	// ImportInvoices reads a spreadsheet, saves every valid invoice in one transaction
	// and reports rejected rows. With dryRun nothing is saved.
	ImportInvoices(ctx context.Context, userID string, format spreadsheet.Format, r io.Reader, dryRun bool) (*dto.ImportResultResponse, error)

	// ExportToGoogleSheet writes the export table into an existing Google spreadsheet.
	// Returns apperrors.ErrNotConfigured when no Sheets client is available.
	ExportToGoogleSheet(ctx context.Context, userID string, req dto.GoogleSheetExportRequest) (*dto.GoogleSheetExportResponse, error)
}
