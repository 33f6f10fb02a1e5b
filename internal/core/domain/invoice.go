package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDirection tells whether an invoice is owed to the user or by the user.
type InvoiceDirection string

const (
	// Outgoing invoices are issued by the user; they count as income.
	Outgoing InvoiceDirection = "OUTGOING"
	// Incoming invoices are received by the user; they count as expense.
	Incoming InvoiceDirection = "INCOMING"
)

// IsValid reports whether d is a known direction.
func (d InvoiceDirection) IsValid() bool {
	return d == Outgoing || d == Incoming
}

// InvoiceStatus is the lifecycle stage of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "DRAFT"
	StatusPending InvoiceStatus = "PENDING"
	StatusPaid    InvoiceStatus = "PAID"
	StatusOverdue InvoiceStatus = "OVERDUE"
)

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// LineItem is a single billable row of an invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Amount returns quantity × unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Invoice is an invoice record owned by exactly one user.
// Total is computed from LineItems when the invoice is saved and is
// authoritative afterwards.
type Invoice struct {
	InvoiceID         string           `json:"invoiceID"`
	OwnerID           string           `json:"ownerID"`
	Direction         InvoiceDirection `json:"direction"`
	CounterpartyName  string           `json:"counterpartyName"`
	CounterpartyEmail string           `json:"counterpartyEmail"`
	IssueDate         time.Time        `json:"issueDate"`
	DueDate           time.Time        `json:"dueDate"`
	Status            InvoiceStatus    `json:"status"`
	LineItems         []LineItem       `json:"lineItems"`
	Notes             *string          `json:"notes,omitempty"`
	Total             decimal.Decimal  `json:"total"`
	AuditFields
}

// InvoiceFilter narrows an owner's invoice listing.
type InvoiceFilter struct {
	Status    *InvoiceStatus
	Direction *InvoiceDirection
	Search    string
}
