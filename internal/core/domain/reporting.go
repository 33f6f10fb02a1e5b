package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportMonths is the number of calendar months on every dashboard series.
const ReportMonths = 6

// SummaryTotals are the headline dashboard figures.
type SummaryTotals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	PendingIncome decimal.Decimal `json:"pendingIncome"`
	OverdueIncome decimal.Decimal `json:"overdueIncome"`
}

// RevenuePoint is one month of recognised outgoing revenue.
type RevenuePoint struct {
	Label string          `json:"label"`
	Month time.Time       `json:"month"` // first day of the month
	Value decimal.Decimal `json:"value"`
}

// OutstandingPoint is one month of pending and overdue amounts.
type OutstandingPoint struct {
	Label   string          `json:"label"`
	Month   time.Time       `json:"month"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
}

// DashboardReport is the aggregated view of one user's invoices.
type DashboardReport struct {
	Summary     SummaryTotals      `json:"summary"`
	Revenue     []RevenuePoint     `json:"revenue"`
	Outstanding []OutstandingPoint `json:"outstanding"`
}
