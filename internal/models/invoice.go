package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID         string          `db:"invoice_id"`
	OwnerID           string          `db:"owner_id"`
	Direction         string          `db:"direction"`
	CounterpartyName  string          `db:"counterparty_name"`
	CounterpartyEmail string          `db:"counterparty_email"`
	IssueDate         time.Time       `db:"issue_date"`
	DueDate           time.Time       `db:"due_date"`
	Status            string          `db:"status"`
	Notes             sql.NullString  `db:"notes"`
	Total             decimal.Decimal `db:"total"`
	AuditFields
}

// InvoiceLineItem is a row of the invoice_line_items table.
type InvoiceLineItem struct {
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}
