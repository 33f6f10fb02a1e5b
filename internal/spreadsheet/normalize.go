package spreadsheet

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RowError reports a group of rows that could not become an invoice.
type RowError struct {
	Row       int // 1-based sheet row of the group's first row
	Reference string
	Reason    string
}

func (e RowError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("row %d (%s): %s", e.Row, e.Reference, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

var requiredColumns = []string{ColDirection, ColCounterparty, ColIssueDate, ColDueDate}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02.01.2006",
}

// invoiceRow holds the invoice-level cells of a group, validated before conversion.
type invoiceRow struct {
	Direction         string `col:"Direction" validate:"required,oneof=OUTGOING INCOMING"`
	Status            string `col:"Status" validate:"omitempty,oneof=DRAFT PENDING PAID OVERDUE"`
	Counterparty      string `col:"Counterparty" validate:"required,max=255"`
	CounterpartyEmail string `col:"Counterparty Email" validate:"omitempty,email,max=255"`
	IssueDate         string `col:"Issue Date" validate:"required"`
	DueDate           string `col:"Due Date" validate:"required"`
	Notes             string `col:"Notes" validate:"max=2000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("col")
	})
	return v
}

type sheetRow struct {
	num   int
	cells []string
	cols  map[string]int
}

func (r sheetRow) get(col string) string {
	i, ok := r.cols[canonical(col)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

type rowGroup struct {
	ref  string
	rows []sheetRow
}

// Normalize turns raw spreadsheet rows into invoices owned by ownerID.
//
// The first non-blank row is the header; column names are matched ignoring
// case and extra spaces. Rows sharing a Reference form one invoice whose
// invoice-level fields come from its first row; rows without a Reference are
// invoices of their own. Groups that fail validation are returned as
// RowErrors and do not stop the rest of the sheet. The returned error is
// reserved for sheets that cannot be read at all.
func Normalize(rows [][]string, ownerID string, now time.Time) ([]domain.Invoice, []RowError, error) {
	headerAt := -1
	for i, r := range rows {
		if !blank(r) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, nil, fmt.Errorf("%w: spreadsheet is empty", apperrors.ErrValidation)
	}

	cols, err := indexHeader(rows[headerAt])
	if err != nil {
		return nil, nil, err
	}

	var groups []*rowGroup
	byRef := make(map[string]*rowGroup)
	for i := headerAt + 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		r := sheetRow{num: i + 1, cells: rows[i], cols: cols}
		ref := r.get(ColReference)
		if ref == "" {
			groups = append(groups, &rowGroup{rows: []sheetRow{r}})
			continue
		}
		g, ok := byRef[ref]
		if !ok {
			g = &rowGroup{ref: ref}
			byRef[ref] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}

	invoices := make([]domain.Invoice, 0, len(groups))
	var rejected []RowError
	for _, g := range groups {
		inv, err := buildInvoice(g.rows, ownerID, now)
		if err != nil {
			rejected = append(rejected, RowError{Row: g.rows[0].num, Reference: g.ref, Reason: err.Error()})
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, rejected, nil
}

func indexHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := canonical(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := cols[key]; !seen && key != "" {
			cols[key] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[canonical(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return cols, nil
}

func buildInvoice(rows []sheetRow, ownerID string, now time.Time) (domain.Invoice, error) {
	first := rows[0]
	rec := invoiceRow{
		Direction:         strings.ToUpper(first.get(ColDirection)),
		Status:            strings.ToUpper(first.get(ColStatus)),
		Counterparty:      first.get(ColCounterparty),
		CounterpartyEmail: first.get(ColCounterpartyEmail),
		IssueDate:         first.get(ColIssueDate),
		DueDate:           first.get(ColDueDate),
		Notes:             first.get(ColNotes),
	}
	if err := validate.Struct(rec); err != nil {
		return domain.Invoice{}, describeValidation(err)
	}

	issue, err := parseDate(rec.IssueDate)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%s: %w", ColIssueDate, err)
	}
	due, err := parseDate(rec.DueDate)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%s: %w", ColDueDate, err)
	}
	if due.Before(issue) {
		return domain.Invoice{}, errors.New("due date is before issue date")
	}

	status := domain.InvoiceStatus(rec.Status)
	if status == "" {
		status = domain.StatusDraft
	}

	var items []domain.LineItem
	for _, r := range rows {
		li, ok, err := parseLineItem(r)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("row %d: %w", r.num, err)
		}
		if ok {
			items = append(items, li)
		}
	}
	if err := accounting.ValidateLineItems(items); err != nil {
		return domain.Invoice{}, err
	}

	if declared := first.get(ColInvoiceTotal); declared != "" {
		total, err := parseAmount(declared)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("%s: %w", ColInvoiceTotal, err)
		}
		if err := accounting.VerifyDeclaredTotal(total, items); err != nil {
			return domain.Invoice{}, err
		}
	}

	var notes *string
	if rec.Notes != "" {
		n := rec.Notes
		notes = &n
	}

	return domain.Invoice{
		InvoiceID:         uuid.NewString(),
		OwnerID:           ownerID,
		Direction:         domain.InvoiceDirection(rec.Direction),
		CounterpartyName:  rec.Counterparty,
		CounterpartyEmail: rec.CounterpartyEmail,
		IssueDate:         issue,
		DueDate:           due,
		Status:            status,
		LineItems:         items,
		Notes:             notes,
		Total:             accounting.CalculateInvoiceTotal(items),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}, nil
}

// parseLineItem reports ok=false for rows that carry no line item cells.
func parseLineItem(r sheetRow) (domain.LineItem, bool, error) {
	desc := r.get(ColDescription)
	qtyRaw := r.get(ColQuantity)
	priceRaw := r.get(ColUnitPrice)
	if desc == "" && qtyRaw == "" && priceRaw == "" {
		return domain.LineItem{}, false, nil
	}
	if desc == "" {
		return domain.LineItem{}, false, errors.New("line item has no description")
	}
	if priceRaw == "" {
		return domain.LineItem{}, false, errors.New("line item has no unit price")
	}

	qty := decimal.NewFromInt(1)
	if qtyRaw != "" {
		q, err := parseAmount(qtyRaw)
		if err != nil {
			return domain.LineItem{}, false, fmt.Errorf("%s: %w", ColQuantity, err)
		}
		qty = q
	}
	price, err := parseAmount(priceRaw)
	if err != nil {
		return domain.LineItem{}, false, fmt.Errorf("%s: %w", ColUnitPrice, err)
	}

	li := domain.LineItem{Description: desc, Quantity: qty, UnitPrice: price}
	if lineTotal := r.get(ColLineTotal); lineTotal != "" {
		lt, err := parseAmount(lineTotal)
		if err != nil {
			return domain.LineItem{}, false, fmt.Errorf("%s: %w", ColLineTotal, err)
		}
		if !lt.Equal(li.Amount()) {
			return domain.LineItem{}, false, fmt.Errorf("line total %s does not match quantity × unit price %s", lt.String(), li.Amount().String())
		}
	}
	return li, true, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return startOfDay(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return startOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "email":
			msgs = append(msgs, fe.Field()+" is not a valid email address")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s is longer than %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
