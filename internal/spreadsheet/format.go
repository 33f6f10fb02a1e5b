// Package spreadsheet converts invoices to and from tabular files.
package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
)

// Format is a supported spreadsheet file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "xlsx" or "csv" in any case, with or without a leading dot.
// An empty string selects XLSX.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: unsupported spreadsheet format %q", apperrors.ErrValidation, s)
}

// FormatFromFilename derives the format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("%w: file %q has no extension", apperrors.ErrValidation, name)
	}
	return ParseFormat(ext)
}

// ContentType is the MIME type used for downloads.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}
