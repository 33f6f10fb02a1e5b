package services

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

// InvoiceReaderSvc defines read operations on a user's invoices.
type InvoiceReaderSvc interface {
	// GetInvoice returns apperrors.ErrNotFound when the invoice does not exist or is not owned by userID.
	GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a filtered page of invoices, newest first.
	ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListRecentInvoices retrieves the limit most recently created invoices.
	ListRecentInvoices(ctx context.Context, userID string, limit int) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations on a user's invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice validates the request, computes the total and saves a new invoice.
	CreateInvoice(ctx context.Context, userID string, req dto.InvoiceRequest) (*domain.Invoice, error)

	// ReplaceInvoice overwrites every field of an existing invoice.
	ReplaceInvoice(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice.
	DeleteInvoice(ctx context.Context, userID, invoiceID string) error

	// DuplicateInvoice copies an invoice into a new draft issued today.
	DuplicateInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
