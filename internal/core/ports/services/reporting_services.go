package services

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// Dashboard aggregates every invoice of the user into summary totals and monthly series.
	Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)
}
