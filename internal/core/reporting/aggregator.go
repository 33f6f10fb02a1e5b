// Package reporting turns a user's invoices into dashboard figures.
package reporting

import (
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
)

// monthLayout renders the short month name ("Jan", "Okt", ...).
const monthLayout = "Jan"

// Aggregate computes the dashboard report for invoices as seen at now.
//
// The revenue and outstanding series always cover the month containing now
// and the five months before it, oldest first. Invoices are bucketed by the
// calendar month of their issue date. The input slice is not modified and its
// order does not matter.
func Aggregate(invoices []domain.Invoice, now time.Time, locale monday.Locale) (domain.DashboardReport, error) {
	start := time.Date(now.Year(), now.Month()-(domain.ReportMonths-1), 1, 0, 0, 0, 0, now.Location())
	startIdx := monthIndex(start)

	report := domain.DashboardReport{
		Summary: domain.SummaryTotals{
			TotalIncome:   decimal.Zero,
			TotalExpense:  decimal.Zero,
			PendingIncome: decimal.Zero,
			OverdueIncome: decimal.Zero,
		},
		Revenue:     make([]domain.RevenuePoint, domain.ReportMonths),
		Outstanding: make([]domain.OutstandingPoint, domain.ReportMonths),
	}
	for i := 0; i < domain.ReportMonths; i++ {
		month := start.AddDate(0, i, 0)
		label := monday.Format(month, monthLayout, locale)
		report.Revenue[i] = domain.RevenuePoint{Label: label, Month: month, Value: decimal.Zero}
		report.Outstanding[i] = domain.OutstandingPoint{Label: label, Month: month, Pending: decimal.Zero, Overdue: decimal.Zero}
	}

	for i := range invoices {
		inv := &invoices[i]
		if err := checkAggregatable(inv); err != nil {
			return domain.DashboardReport{}, err
		}

		bucket := monthIndex(inv.IssueDate) - startIdx
		inWindow := bucket >= 0 && bucket < domain.ReportMonths

		if inv.Status != domain.StatusDraft {
			switch inv.Direction {
			case domain.Outgoing:
				report.Summary.TotalIncome = report.Summary.TotalIncome.Add(inv.Total)
				if inWindow {
					report.Revenue[bucket].Value = report.Revenue[bucket].Value.Add(inv.Total)
				}
			case domain.Incoming:
				report.Summary.TotalExpense = report.Summary.TotalExpense.Add(inv.Total)
			}
		}

		switch inv.Status {
		case domain.StatusPending:
			if inv.Direction == domain.Outgoing {
				report.Summary.PendingIncome = report.Summary.PendingIncome.Add(inv.Total)
			}
			if inWindow {
				report.Outstanding[bucket].Pending = report.Outstanding[bucket].Pending.Add(inv.Total)
			}
		case domain.StatusOverdue:
			if inv.Direction == domain.Outgoing {
				report.Summary.OverdueIncome = report.Summary.OverdueIncome.Add(inv.Total)
			}
			if inWindow {
				report.Outstanding[bucket].Overdue = report.Outstanding[bucket].Overdue.Add(inv.Total)
			}
		}
	}

	return report, nil
}

func checkAggregatable(inv *domain.Invoice) error {
	if inv.IssueDate.IsZero() {
		return apperrors.NewRecordError(inv.InvoiceID, "missing issue date")
	}
	if !inv.Direction.IsValid() {
		return apperrors.NewRecordError(inv.InvoiceID, "unknown direction "+string(inv.Direction))
	}
	if !inv.Status.IsValid() {
		return apperrors.NewRecordError(inv.InvoiceID, "unknown status "+string(inv.Status))
	}
	return nil
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// KnownLocale reports whether locale names a locale monday can format.
func KnownLocale(locale string) (monday.Locale, bool) {
	for _, l := range monday.ListLocales() {
		if string(l) == locale {
			return l, true
		}
	}
	return "", false
}

// ResolveLocale returns locale when monday knows it, fallback otherwise.
func ResolveLocale(locale string, fallback monday.Locale) monday.Locale {
	if l, ok := KnownLocale(locale); ok {
		return l
	}
	return fallback
}
