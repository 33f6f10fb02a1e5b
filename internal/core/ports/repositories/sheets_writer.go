package repositories

import "context"

// SheetsWriter writes a table of cells to an external spreadsheet.
type SheetsWriter interface {
	// WriteTable replaces the contents of sheetName with rows and returns the updated range.
	WriteTable(ctx context.Context, spreadsheetID, sheetName string, rows [][]string) (string, error)
}
