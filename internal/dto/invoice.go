package dto

import (
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of invoice dates.
const DateLayout = "2006-01-02"

// LineItemRequest is one line of an invoice as sent by clients.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string" example:"2"`
	UnitPrice   decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"49.90"`
}

// InvoiceRequest is the full representation used to create or replace an invoice.
// Any client-supplied total is ignored; the server computes it from the line items.
type InvoiceRequest struct {
	Direction         domain.InvoiceDirection `json:"direction" binding:"required,oneof=OUTGOING INCOMING"`
	CounterpartyName  string                  `json:"counterpartyName" binding:"required,max=255"`
	CounterpartyEmail string                  `json:"counterpartyEmail" binding:"omitempty,email,max=255"`
	IssueDate         string                  `json:"issueDate" binding:"required,datetime=2006-01-02" example:"2026-01-31"`
	DueDate           string                  `json:"dueDate" binding:"required,datetime=2006-01-02" example:"2026-02-28"`
	Status            domain.InvoiceStatus    `json:"status" binding:"omitempty,oneof=DRAFT PENDING PAID OVERDUE"`
	LineItems         []LineItemRequest       `json:"lineItems" binding:"max=200,dive"`
	Notes             *string                 `json:"notes" binding:"omitempty,max=2000"`
}

// LineItemResponse is one line of an invoice in API responses.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice   decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

// InvoiceResponse is the API representation of an invoice.
type InvoiceResponse struct {
	InvoiceID         string                  `json:"invoiceID"`
	Direction         domain.InvoiceDirection `json:"direction"`
	CounterpartyName  string                  `json:"counterpartyName"`
	CounterpartyEmail string                  `json:"counterpartyEmail"`
	IssueDate         string                  `json:"issueDate"`
	DueDate           string                  `json:"dueDate"`
	Status            domain.InvoiceStatus    `json:"status"`
	LineItems         []LineItemResponse      `json:"lineItems"`
	Notes             *string                 `json:"notes,omitempty"`
	Total             decimal.Decimal         `json:"total" swaggertype:"string"`
	CreatedAt         time.Time               `json:"createdAt"`
	LastUpdatedAt     time.Time               `json:"lastUpdatedAt"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status" binding:"omitempty,oneof=DRAFT PENDING PAID OVERDUE"`
	Direction string  `form:"direction" binding:"omitempty,oneof=OUTGOING INCOMING"`
	Query     string  `form:"q" binding:"max=100"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its API representation.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = LineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount(),
		}
	}
	return InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		Direction:         inv.Direction,
		CounterpartyName:  inv.CounterpartyName,
		CounterpartyEmail: inv.CounterpartyEmail,
		IssueDate:         inv.IssueDate.Format(DateLayout),
		DueDate:           inv.DueDate.Format(DateLayout),
		Status:            inv.Status,
		LineItems:         items,
		Notes:             inv.Notes,
		Total:             inv.Total,
		CreatedAt:         inv.CreatedAt,
		LastUpdatedAt:     inv.LastUpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
