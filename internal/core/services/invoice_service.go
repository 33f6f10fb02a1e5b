package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/utils"
	"github.com/SscSPs/invoice_management_app/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	defaultRecentInvoices = 5
	maxRecentInvoices     = 50
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	tracker     utils.EventTracker
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceClock sets the clock used for audit timestamps and duplicate dates.
func WithInvoiceClock(clock func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.Clock = clock
	}
}

// WithInvoiceEventTracker sets the analytics tracker notified about new invoices.
func WithInvoiceEventTracker(tracker utils.EventTracker) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.tracker = tracker
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure invoiceService implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// invoiceFromRequest validates req and returns an invoice with every
// client-controlled field set and the total computed from the line items.
func invoiceFromRequest(req dto.InvoiceRequest) (domain.Invoice, error) {
	if !req.Direction.IsValid() {
		return domain.Invoice{}, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, req.Direction)
	}
	status := req.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.IsValid() {
		return domain.Invoice{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if strings.TrimSpace(req.CounterpartyName) == "" {
		return domain.Invoice{}, fmt.Errorf("%w: counterparty name is required", apperrors.ErrValidation)
	}

	issueDate, err := time.Parse(dto.DateLayout, req.IssueDate)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: invalid issue date %q", apperrors.ErrValidation, req.IssueDate)
	}
	dueDate, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
	}
	if dueDate.Before(issueDate) {
		return domain.Invoice{}, fmt.Errorf("%w: due date is before issue date", apperrors.ErrValidation)
	}

	items := make([]domain.LineItem, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = domain.LineItem{
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	if err := accounting.ValidateLineItems(items); err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var notes *string
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		n := strings.TrimSpace(*req.Notes)
		notes = &n
	}

	return domain.Invoice{
		Direction:         req.Direction,
		CounterpartyName:  strings.TrimSpace(req.CounterpartyName),
		CounterpartyEmail: strings.TrimSpace(req.CounterpartyEmail),
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Status:            status,
		LineItems:         items,
		Notes:             notes,
		Total:             accounting.CalculateInvoiceTotal(items),
	}, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	invoice, err := invoiceFromRequest(req)
	if err != nil {
		s.LogDebug(ctx, "Rejected invoice request", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	invoice.InvoiceID = uuid.NewString()
	invoice.OwnerID = userID
	invoice.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("direction", string(invoice.Direction)),
		slog.String("status", string(invoice.Status)))
	s.track(userID, "invoice_created", invoice)
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	filter := domain.InvoiceFilter{Search: strings.TrimSpace(params.Query)}
	if params.Status != "" {
		status := domain.InvoiceStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if params.Direction != "" {
		direction := domain.InvoiceDirection(params.Direction)
		if !direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, params.Direction)
		}
		filter.Direction = &direction
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByOwner(ctx, userID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: nextToken,
	}, nil
}

func (s *invoiceService) ListRecentInvoices(ctx context.Context, userID string, limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = defaultRecentInvoices
	}
	if limit > maxRecentInvoices {
		limit = maxRecentInvoices
	}
	invoices, _, err := s.invoiceRepo.ListInvoicesByOwner(ctx, userID, domain.InvoiceFilter{}, limit, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent invoices")
		return nil, err
	}
	return invoices, nil
}

func (s *invoiceService) ReplaceInvoice(ctx context.Context, userID, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	existing, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	replacement, err := invoiceFromRequest(req)
	if err != nil {
		return nil, err
	}
	replacement.InvoiceID = existing.InvoiceID
	replacement.OwnerID = existing.OwnerID
	replacement.AuditFields = domain.AuditFields{
		CreatedAt:     existing.CreatedAt,
		CreatedBy:     existing.CreatedBy,
		LastUpdatedAt: s.Now(),
		LastUpdatedBy: userID,
	}

	if err := s.invoiceRepo.ReplaceInvoice(ctx, replacement); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to replace invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Invoice replaced", slog.String("invoice_id", invoiceID))
	return &replacement, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		}
		return err
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// DuplicateInvoice keeps the counterparty, line items, notes and payment term
// of the source; the copy is a draft issued today.
func (s *invoiceService) DuplicateInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	source, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	issueDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	term := source.DueDate.Sub(source.IssueDate)
	if term < 0 {
		term = 0
	}

	items := make([]domain.LineItem, len(source.LineItems))
	copy(items, source.LineItems)

	var notes *string
	if source.Notes != nil {
		n := *source.Notes
		notes = &n
	}

	dup := domain.Invoice{
		InvoiceID:         uuid.NewString(),
		OwnerID:           userID,
		Direction:         source.Direction,
		CounterpartyName:  source.CounterpartyName,
		CounterpartyEmail: source.CounterpartyEmail,
		IssueDate:         issueDate,
		DueDate:           issueDate.Add(term),
		Status:            domain.StatusDraft,
		LineItems:         items,
		Notes:             notes,
		Total:             accounting.CalculateInvoiceTotal(items),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated invoice", slog.String("source_invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save duplicated invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice duplicated",
		slog.String("source_invoice_id", invoiceID),
		slog.String("invoice_id", dup.InvoiceID))
	s.track(userID, "invoice_duplicated", dup)
	return &dup, nil
}

func (s *invoiceService) track(userID, event string, invoice domain.Invoice) {
	if s.tracker == nil {
		return
	}
	s.tracker.Enqueue(userID, event, map[string]any{
		"direction":  string(invoice.Direction),
		"status":     string(invoice.Status),
		"line_items": len(invoice.LineItems),
	})
}
