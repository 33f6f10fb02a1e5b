package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_management_app/internal/models"
	"github.com/SscSPs/invoice_management_app/internal/utils/mapping"
	"github.com/SscSPs/invoice_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, owner_id, direction, counterparty_name, counterparty_email,
		issue_date, due_date, status, notes, total,
		created_at, created_by, last_updated_at, last_updated_by`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OwnerID,
		&m.Direction,
		&m.CounterpartyName,
		&m.CounterpartyEmail,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.Notes,
		&m.Total,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice persists an invoice and its line items atomically.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertInvoice(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveInvoicesInTx persists many invoices in a caller-managed transaction.
func (r *PgxInvoiceRepository) SaveInvoicesInTx(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error {
	for _, inv := range invoices {
		if err := r.insertInvoice(ctx, tx, inv); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxInvoiceRepository) insertInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m, items := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.OwnerID,
		m.Direction,
		m.CounterpartyName,
		m.CounterpartyEmail,
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Notes,
		m.Total,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", m.InvoiceID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert invoice "+m.InvoiceID, err)
	}
	return insertLineItems(ctx, tx, items)
}

func insertLineItems(ctx context.Context, tx pgx.Tx, items []models.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, li := range items {
		batch.Queue(`
			INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5);`,
			li.InvoiceID, li.Position, li.Description, li.Quantity, li.UnitPrice,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert invoice line items", err)
	}
	return nil
}

// ReplaceInvoice overwrites the invoice row and all of its line items.
// Owner and creation audit fields are never changed.
func (r *PgxInvoiceRepository) ReplaceInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, items := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE invoices
		SET direction = $1, counterparty_name = $2, counterparty_email = $3,
		    issue_date = $4, due_date = $5, status = $6, notes = $7, total = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE invoice_id = $11 AND owner_id = $12;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.Direction,
		m.CounterpartyName,
		m.CounterpartyEmail,
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Notes,
		m.Total,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
		m.OwnerID,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to clear invoice line items", err)
	}
	if err := insertLineItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteInvoice removes an invoice; line items go with it through ON DELETE CASCADE.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND owner_id = $2;`, invoiceID, ownerID)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoicesByOwner(ctx context.Context, ownerID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE owner_id = $1;`, ownerID)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to delete invoices of user "+ownerID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND owner_id = $2;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find invoice "+invoiceID, err)
	}

	invoices, err := withLineItems(ctx, r.Pool, []models.Invoice{m})
	if err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

// ListInvoicesByOwner pages through invoices newest first.
// Ordering is (created_at, invoice_id) DESC and the next token encodes the last row of that key.
func (r *PgxInvoiceRepository) ListInvoicesByOwner(ctx context.Context, ownerID string, filter domain.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	query, args, err := buildListInvoicesQuery(ownerID, filter, limit+1, nextToken)
	if err != nil {
		return nil, nil, err
	}

	page, err := r.queryInvoices(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		nextTokenVal = &token
	}

	invoices, err := withLineItems(ctx, r.Pool, page)
	if err != nil {
		return nil, nil, err
	}
	return invoices, nextTokenVal, nil
}

// buildListInvoicesQuery assembles the listing query with its filters bound
// to positional parameters in the order they appear.
func buildListInvoicesQuery(ownerID string, filter domain.InvoiceFilter, fetchLimit int, nextToken *string) (string, []any, error) {
	args := []any{ownerID}
	where := []string{"owner_id = $1"}
	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		where = append(where, "status = "+addArg(string(*filter.Status)))
	}
	if filter.Direction != nil {
		where = append(where, "direction = "+addArg(string(*filter.Direction)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := addArg("%" + escapeLike(s) + "%")
		where = append(where, "(counterparty_name ILIKE "+p+" OR counterparty_email ILIKE "+p+")")
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return "", nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		where = append(where, "(created_at, invoice_id) < ("+addArg(lastCreatedAt)+", "+addArg(lastID)+")")
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC, invoice_id DESC LIMIT ` + addArg(fetchLimit) + `;`
	return query, args, nil
}

func (r *PgxInvoiceRepository) FindAllInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = $1 ORDER BY created_at DESC, invoice_id DESC;`
	rows, err := r.queryInvoices(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return withLineItems(ctx, r.Pool, rows)
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]models.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query invoices", err)
	}
	defer rows.Close()

	result := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan invoice row", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating invoice rows", err)
	}
	return result, nil
}

// withLineItems loads the line items of all given invoices in one query.
func withLineItems(ctx context.Context, q querier, invoices []models.Invoice) ([]domain.Invoice, error) {
	if len(invoices) == 0 {
		return []domain.Invoice{}, nil
	}
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}

	rows, err := q.Query(ctx, `
		SELECT invoice_id, position, description, quantity, unit_price
		FROM invoice_line_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position;`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query invoice line items", err)
	}
	defer rows.Close()

	itemsByInvoice := make(map[string][]models.InvoiceLineItem, len(invoices))
	for rows.Next() {
		var li models.InvoiceLineItem
		if err := rows.Scan(&li.InvoiceID, &li.Position, &li.Description, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan invoice line item", err)
		}
		itemsByInvoice[li.InvoiceID] = append(itemsByInvoice[li.InvoiceID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating invoice line items", err)
	}

	result := make([]domain.Invoice, len(invoices))
	for i, inv := range invoices {
		result[i] = mapping.ToDomainInvoice(inv, itemsByInvoice[inv.InvoiceID])
	}
	return result, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
