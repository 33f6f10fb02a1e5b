package accounting

import (
	"fmt"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MaxLineItems bounds the number of lines accepted on a single invoice.
const MaxLineItems = 200

// MaxAmountPlaces is the number of decimal places stored for quantities and
// unit prices. Their product, and so every invoice total, fits in twice as many.
const MaxAmountPlaces = 4

// CalculateInvoiceTotal sums quantity × unit price over the line items.
// An invoice without line items totals zero.
func CalculateInvoiceTotal(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}

// ValidateLineItems checks the line items of an invoice before it is saved.
// Negative quantities and prices are allowed so credit notes can be recorded.
func ValidateLineItems(items []domain.LineItem) error {
	if len(items) > MaxLineItems {
		return fmt.Errorf("invoice has %d line items, at most %d are allowed", len(items), MaxLineItems)
	}
	for i, item := range items {
		if item.Description == "" {
			return fmt.Errorf("line item %d has no description", i+1)
		}
		if item.Quantity.IsZero() {
			return fmt.Errorf("line item %d has zero quantity", i+1)
		}
		if !fitsPlaces(item.Quantity) {
			return fmt.Errorf("line item %d quantity %s has more than %d decimal places", i+1, item.Quantity.String(), MaxAmountPlaces)
		}
		if !fitsPlaces(item.UnitPrice) {
			return fmt.Errorf("line item %d unit price %s has more than %d decimal places", i+1, item.UnitPrice.String(), MaxAmountPlaces)
		}
	}
	return nil
}

func fitsPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Round(MaxAmountPlaces))
}

// VerifyDeclaredTotal checks a total supplied from outside (e.g. a spreadsheet)
// against the line items it claims to summarise.
func VerifyDeclaredTotal(declared decimal.Decimal, items []domain.LineItem) error {
	computed := CalculateInvoiceTotal(items)
	if !declared.Equal(computed) {
		return fmt.Errorf("invoice total %s does not match line items sum %s", declared.String(), computed.String())
	}
	return nil
}
