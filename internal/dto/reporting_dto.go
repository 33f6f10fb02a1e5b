package dto

import (
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevenuePointResponse is one month of the revenue chart.
type RevenuePointResponse struct {
	Label string          `json:"label"`
	Month string          `json:"month"` // YYYY-MM
	Value decimal.Decimal `json:"value" swaggertype:"string"`
}

// OutstandingPointResponse is one month of the pending/overdue chart.
type OutstandingPointResponse struct {
	Label   string          `json:"label"`
	Month   string          `json:"month"`
	Pending decimal.Decimal `json:"pending" swaggertype:"string"`
	Overdue decimal.Decimal `json:"overdue" swaggertype:"string"`
}

// DashboardResponse represents the dashboard report response
type DashboardResponse struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	Locale       string    `json:"locale"`
	CurrencyCode string    `json:"currencyCode"`
	Summary      struct {
		TotalIncome   decimal.Decimal `json:"totalIncome" swaggertype:"string"`
		TotalExpense  decimal.Decimal `json:"totalExpense" swaggertype:"string"`
		NetIncome     decimal.Decimal `json:"netIncome" swaggertype:"string"`
		PendingIncome decimal.Decimal `json:"pendingIncome" swaggertype:"string"`
		OverdueIncome decimal.Decimal `json:"overdueIncome" swaggertype:"string"`
	} `json:"summary"`
	Revenue     []RevenuePointResponse     `json:"revenue"`
	Outstanding []OutstandingPointResponse `json:"outstanding"`
}

// ToDashboardResponse converts a domain dashboard report to a DTO response
func ToDashboardResponse(report *domain.DashboardReport, settings domain.UserSettings, generatedAt time.Time) DashboardResponse {
	response := DashboardResponse{
		GeneratedAt:  generatedAt,
		Locale:       settings.Locale,
		CurrencyCode: settings.CurrencyCode,
		Revenue:      make([]RevenuePointResponse, len(report.Revenue)),
		Outstanding:  make([]OutstandingPointResponse, len(report.Outstanding)),
	}

	response.Summary.TotalIncome = report.Summary.TotalIncome
	response.Summary.TotalExpense = report.Summary.TotalExpense
	response.Summary.NetIncome = report.Summary.TotalIncome.Sub(report.Summary.TotalExpense)
	response.Summary.PendingIncome = report.Summary.PendingIncome
	response.Summary.OverdueIncome = report.Summary.OverdueIncome

	for i, p := range report.Revenue {
		response.Revenue[i] = RevenuePointResponse{
			Label: p.Label,
			Month: p.Month.Format("2006-01"),
			Value: p.Value,
		}
	}
	for i, p := range report.Outstanding {
		response.Outstanding[i] = OutstandingPointResponse{
			Label:   p.Label,
			Month:   p.Month.Format("2006-01"),
			Pending: p.Pending,
			Overdue: p.Overdue,
		}
	}

	return response
}
