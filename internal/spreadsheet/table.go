package spreadsheet

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/utils"
)

// SheetName is the worksheet written on export and preferred on import.
const SheetName = "Invoices"

// dateLayout is used for every date cell written.
const dateLayout = "2006-01-02"

// Column names of the invoice table, in export order.
const (
	ColReference         = "Reference"
	ColDirection         = "Direction"
	ColStatus            = "Status"
	ColCounterparty      = "Counterparty"
	ColCounterpartyEmail = "Counterparty Email"
	ColIssueDate         = "Issue Date"
	ColDueDate           = "Due Date"
	ColDescription       = "Description"
	ColQuantity          = "Quantity"
	ColUnitPrice         = "Unit Price"
	ColLineTotal         = "Line Total"
	ColInvoiceTotal      = "Invoice Total"
	ColNotes             = "Notes"
)

// Header is the first row of every exported table.
var Header = []string{
	ColReference, ColDirection, ColStatus, ColCounterparty, ColCounterpartyEmail,
	ColIssueDate, ColDueDate, ColDescription, ColQuantity, ColUnitPrice,
	ColLineTotal, ColInvoiceTotal, ColNotes,
}

// Rows flattens invoices into a table, header first, one row per line item.
// Invoice-level columns repeat on every row of the same invoice so each row
// stands on its own; the invoice id is the Reference that groups them.
// An invoice without line items still gets one row.
func Rows(invoices []domain.Invoice) [][]string {
	rows := make([][]string, 0, len(invoices)+1)
	rows = append(rows, append([]string(nil), Header...))

	for i := range invoices {
		inv := &invoices[i]
		notes := ""
		if inv.Notes != nil {
			notes = *inv.Notes
		}
		base := func() []string {
			return []string{
				inv.InvoiceID,
				string(inv.Direction),
				string(inv.Status),
				inv.CounterpartyName,
				inv.CounterpartyEmail,
				inv.IssueDate.Format(dateLayout),
				inv.DueDate.Format(dateLayout),
				"", "", "", "",
				utils.FormatAmount(inv.Total),
				notes,
			}
		}

		if len(inv.LineItems) == 0 {
			rows = append(rows, base())
			continue
		}
		for _, li := range inv.LineItems {
			row := base()
			row[7] = li.Description
			row[8] = li.Quantity.String()
			row[9] = utils.FormatAmount(li.UnitPrice)
			row[10] = utils.FormatAmount(li.Amount())
			rows = append(rows, row)
		}
	}
	return rows
}
