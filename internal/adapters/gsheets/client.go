// Package gsheets writes tables into Google Sheets through the Sheets v4 API.
package gsheets

import (
	"context"
	"fmt"
	"strings"

	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements portsrepo.SheetsWriter.
type Client struct {
	svc *sheets.Service
}

var _ portsrepo.SheetsWriter = (*Client)(nil)

// New creates a Client from explicit client options.
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// NewFromCredentialsFile creates a Client authenticated as a service account.
// The target spreadsheets must be shared with that account.
func NewFromCredentialsFile(ctx context.Context, path string) (*Client, error) {
	return New(ctx,
		option.WithCredentialsFile(path),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// WriteTable clears sheetName and writes rows starting at A1.
func (c *Client) WriteTable(ctx context.Context, spreadsheetID, sheetName string, rows [][]string) (string, error) {
	sheetRange := quoteSheet(sheetName)

	if _, err := c.svc.Spreadsheets.Values.
		Clear(spreadsheetID, sheetRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet %q: %w", sheetName, err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	resp, err := c.svc.Spreadsheets.Values.
		Update(spreadsheetID, sheetRange+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write sheet %q: %w", sheetName, err)
	}
	return resp.UpdatedRange, nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
