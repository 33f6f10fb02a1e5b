package mapping

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to its table row and line item rows.
func ToModelInvoice(d domain.Invoice) (models.Invoice, []models.InvoiceLineItem) {
	m := models.Invoice{
		InvoiceID:         d.InvoiceID,
		OwnerID:           d.OwnerID,
		Direction:         string(d.Direction),
		CounterpartyName:  d.CounterpartyName,
		CounterpartyEmail: d.CounterpartyEmail,
		IssueDate:         d.IssueDate,
		DueDate:           d.DueDate,
		Status:            string(d.Status),
		Notes:             toNullString(d.Notes),
		Total:             d.Total,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	items := make([]models.InvoiceLineItem, len(d.LineItems))
	for i, li := range d.LineItems {
		items[i] = models.InvoiceLineItem{
			InvoiceID:   d.InvoiceID,
			Position:    i + 1,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	return m, items
}

// ToDomainInvoice converts an invoice row and its line item rows (ordered by position) to a domain Invoice.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceLineItem) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:         m.InvoiceID,
		OwnerID:           m.OwnerID,
		Direction:         domain.InvoiceDirection(m.Direction),
		CounterpartyName:  m.CounterpartyName,
		CounterpartyEmail: m.CounterpartyEmail,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		Status:            domain.InvoiceStatus(m.Status),
		Notes:             fromNullString(m.Notes),
		Total:             m.Total,
		LineItems:         make([]domain.LineItem, len(items)),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	for i, li := range items {
		d.LineItems[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	return d
}
