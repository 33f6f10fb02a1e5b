package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var invoiceNow = time.Date(2026, time.May, 20, 14, 0, 0, 0, time.UTC)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockInvoiceRepository
	mockTracker *MockEventTracker
	service     portssvc.InvoiceSvcFacade
	ctx         context.Context
	userID      string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockTracker = new(MockEventTracker)
	suite.service = services.NewInvoiceService(
		suite.mockRepo,
		services.WithInvoiceClock(fixedClock(invoiceNow)),
		services.WithInvoiceEventTracker(suite.mockTracker),
	)
	suite.ctx = context.Background()
	suite.userID = "user-1"
}

func validInvoiceRequest() dto.InvoiceRequest {
	notes := "  thanks  "
	return dto.InvoiceRequest{
		Direction:         domain.Outgoing,
		CounterpartyName:  " Acme GmbH ",
		CounterpartyEmail: "billing@acme.test",
		IssueDate:         "2026-05-01",
		DueDate:           "2026-05-31",
		LineItems: []dto.LineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("120.50")},
			{Description: "Travel", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("80")},
		},
		Notes: &notes,
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ComputesTotalAndDefaultsToDraft() {
	suite.mockRepo.On("SaveInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.OwnerID == suite.userID && inv.Total.Equal(decimal.RequireFromString("441.50"))
	})).Return(nil).Once()
	suite.mockTracker.On("Enqueue", suite.userID, "invoice_created", mock.Anything).Once()

	created, err := suite.service.CreateInvoice(suite.ctx, suite.userID, validInvoiceRequest())

	suite.Require().NoError(err)
	suite.NotEmpty(created.InvoiceID)
	suite.Equal(domain.StatusDraft, created.Status)
	suite.Equal("Acme GmbH", created.CounterpartyName)
	suite.Equal("441.5", created.Total.String())
	suite.Require().NotNil(created.Notes)
	suite.Equal("thanks", *created.Notes)
	suite.Equal(invoiceNow, created.CreatedAt)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Equal(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), created.IssueDate)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTracker.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ValidationErrors() {
	cases := map[string]func(r *dto.InvoiceRequest){
		"due before issue": func(r *dto.InvoiceRequest) { r.DueDate = "2026-04-30" },
		"bad issue date":   func(r *dto.InvoiceRequest) { r.IssueDate = "01/05/2026" },
		"unknown status":   func(r *dto.InvoiceRequest) { r.Status = "SENT" },
		"blank name":       func(r *dto.InvoiceRequest) { r.CounterpartyName = "   " },
		"zero quantity": func(r *dto.InvoiceRequest) {
			r.LineItems[0].Quantity = decimal.Zero
		},
		"empty description": func(r *dto.InvoiceRequest) { r.LineItems[1].Description = " " },
		"quantity over four places": func(r *dto.InvoiceRequest) {
			r.LineItems[0].Quantity = decimal.RequireFromString("0.33333")
		},
		"unit price over four places": func(r *dto.InvoiceRequest) {
			r.LineItems[1].UnitPrice = decimal.RequireFromString("9.99999")
		},
	}
	for name, mutate := range cases {
		suite.Run(name, func() {
			req := validInvoiceRequest()
			mutate(&req)
			created, err := suite.service.CreateInvoice(suite.ctx, suite.userID, req)
			suite.Nil(created)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeLineItemsAreAllowed() {
	req := validInvoiceRequest()
	req.LineItems = append(req.LineItems, dto.LineItemRequest{
		Description: "Discount", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-41),
	})
	suite.mockRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTracker.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Once()

	created, err := suite.service.CreateInvoice(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("400.5", created.Total.String())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RepositoryError() {
	suite.mockRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	created, err := suite.service.CreateInvoice(suite.ctx, suite.userID, validInvoiceRequest())

	suite.Nil(created)
	suite.ErrorIs(err, assert.AnError)
	suite.mockTracker.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_NotFound() {
	suite.mockRepo.On("FindInvoiceByID", mock.Anything, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	inv, err := suite.service.GetInvoice(suite.ctx, suite.userID, "missing")

	suite.Nil(inv)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_BuildsFilter() {
	status := domain.StatusPending
	direction := domain.Incoming
	token := "next"
	expected := domain.InvoiceFilter{Status: &status, Direction: &direction, Search: "acme"}
	suite.mockRepo.On("ListInvoicesByOwner", mock.Anything, suite.userID, expected, 10, (*string)(nil)).
		Return([]domain.Invoice{{InvoiceID: "inv-1", Total: decimal.NewFromInt(5)}}, &token, nil).Once()

	resp, err := suite.service.ListInvoices(suite.ctx, suite.userID, dto.ListInvoicesParams{
		Limit: 10, Status: "PENDING", Direction: "INCOMING", Query: " acme ",
	})

	suite.Require().NoError(err)
	suite.Len(resp.Invoices, 1)
	suite.Equal("inv-1", resp.Invoices[0].InvoiceID)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_RejectsUnknownStatus() {
	resp, err := suite.service.ListInvoices(suite.ctx, suite.userID, dto.ListInvoicesParams{Limit: 10, Status: "LOST"})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestListRecentInvoices_ClampsLimit() {
	suite.mockRepo.On("ListInvoicesByOwner", mock.Anything, suite.userID, domain.InvoiceFilter{}, 5, (*string)(nil)).
		Return([]domain.Invoice{}, nil, nil).Once()
	suite.mockRepo.On("ListInvoicesByOwner", mock.Anything, suite.userID, domain.InvoiceFilter{}, 50, (*string)(nil)).
		Return([]domain.Invoice{}, nil, nil).Once()

	_, err := suite.service.ListRecentInvoices(suite.ctx, suite.userID, 0)
	suite.Require().NoError(err)
	_, err = suite.service.ListRecentInvoices(suite.ctx, suite.userID, 500)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestReplaceInvoice_KeepsIdentityAndCreation() {
	created := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID: "inv-1",
		OwnerID:   suite.userID,
		AuditFields: domain.AuditFields{
			CreatedAt: created,
			CreatedBy: suite.userID,
		},
	}
	suite.mockRepo.On("FindInvoiceByID", mock.Anything, suite.userID, "inv-1").Return(existing, nil).Once()
	suite.mockRepo.On("ReplaceInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "inv-1" && inv.CreatedAt.Equal(created) && inv.LastUpdatedAt.Equal(invoiceNow)
	})).Return(nil).Once()

	req := validInvoiceRequest()
	req.Status = domain.StatusPaid
	replaced, err := suite.service.ReplaceInvoice(suite.ctx, suite.userID, "inv-1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, replaced.Status)
	suite.Equal(created, replaced.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestReplaceInvoice_NotOwned() {
	suite.mockRepo.On("FindInvoiceByID", mock.Anything, suite.userID, "other").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReplaceInvoice(suite.ctx, suite.userID, "other", validInvoiceRequest())

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice() {
	suite.mockRepo.On("DeleteInvoice", mock.Anything, suite.userID, "inv-1").Return(nil).Once()
	suite.mockRepo.On("DeleteInvoice", mock.Anything, suite.userID, "gone").Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteInvoice(suite.ctx, suite.userID, "inv-1"))
	suite.ErrorIs(suite.service.DeleteInvoice(suite.ctx, suite.userID, "gone"), apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestDuplicateInvoice_NewDraftIssuedToday() {
	notes := "original"
	source := &domain.Invoice{
		InvoiceID:        "inv-1",
		OwnerID:          suite.userID,
		Direction:        domain.Outgoing,
		CounterpartyName: "Acme",
		IssueDate:        time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDate:          time.Date(2026, time.January, 24, 0, 0, 0, 0, time.UTC),
		Status:           domain.StatusPaid,
		LineItems: []domain.LineItem{
			{Description: "Work", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
		},
		Notes: &notes,
		Total: decimal.NewFromInt(100),
	}
	suite.mockRepo.On("FindInvoiceByID", mock.Anything, suite.userID, "inv-1").Return(source, nil).Once()
	suite.mockRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTracker.On("Enqueue", suite.userID, "invoice_duplicated", mock.Anything).Once()

	dup, err := suite.service.DuplicateInvoice(suite.ctx, suite.userID, "inv-1")

	suite.Require().NoError(err)
	suite.NotEqual("inv-1", dup.InvoiceID)
	suite.Equal(domain.StatusDraft, dup.Status)
	suite.Equal(time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC), dup.IssueDate)
	suite.Equal(time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC), dup.DueDate)
	suite.Equal("100", dup.Total.String())
	suite.Require().NotNil(dup.Notes)
	suite.NotSame(source.Notes, dup.Notes)

	dup.LineItems[0].Description = "changed"
	suite.Equal("Work", source.LineItems[0].Description)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
