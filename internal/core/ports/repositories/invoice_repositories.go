package repositories

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceReader defines read operations for invoice data.
// Every read is scoped to the owning user.
type InvoiceReader interface {
	// FindInvoiceByID retrieves one invoice with its line items.
	FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByOwner retrieves a page of invoices, newest first, using token-based pagination.
	// It returns the invoices, a token for the next page, and an error.
	ListInvoicesByOwner(ctx context.Context, ownerID string, filter domain.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// FindAllInvoicesByOwner retrieves every invoice of the owner, newest first.
	FindAllInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its line items.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceInvoice overwrites an existing invoice and all of its line items.
	ReplaceInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice of the owner.
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error

	// DeleteInvoicesByOwner removes every invoice of the owner and returns how many were deleted.
	DeleteInvoicesByOwner(ctx context.Context, ownerID string) (int64, error)
}

// InvoiceTransactionSupport defines operations that run inside a caller-managed transaction.
type InvoiceTransactionSupport interface {
	// SaveInvoicesInTx persists many invoices within the given transaction.
	SaveInvoicesInTx(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceTransactionSupport
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
