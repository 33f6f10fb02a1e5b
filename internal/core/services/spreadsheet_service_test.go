package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/spreadsheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var sheetNow = time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)

const importCSV = `Reference,Direction,Status,Counterparty,Issue Date,Due Date,Description,Quantity,Unit Price
A,OUTGOING,PENDING,Acme,2026-03-01,2026-03-31,Design,2,100
A,OUTGOING,PENDING,Acme,2026-03-01,2026-03-31,Hosting,1,20
B,INCOMING,PAID,Supplier,2026-03-05,2026-03-01,Paper,1,5
,INCOMING,PAID,Cafe,2026-03-07,2026-03-07,Coffee,3,2.5
`

type SpreadsheetServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockInvoiceRepository
	mockSheets  *MockSheetsWriter
	mockTracker *MockEventTracker
	service     portssvc.SpreadsheetSvc
	ctx         context.Context
}

func (suite *SpreadsheetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockSheets = new(MockSheetsWriter)
	suite.mockTracker = new(MockEventTracker)
	suite.service = services.NewSpreadsheetService(
		suite.mockRepo,
		services.WithSheetsWriter(suite.mockSheets),
		services.WithSpreadsheetClock(fixedClock(sheetNow)),
		services.WithSpreadsheetEventTracker(suite.mockTracker),
	)
	suite.ctx = context.Background()
}

func storedInvoices() []domain.Invoice {
	return []domain.Invoice{
		{
			InvoiceID: "late", Direction: domain.Outgoing, Status: domain.StatusPaid, CounterpartyName: "Later",
			IssueDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			LineItems: []domain.LineItem{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}},
			Total:     decimal.NewFromInt(10),
		},
		{
			InvoiceID: "early", Direction: domain.Incoming, Status: domain.StatusPending, CounterpartyName: "Earlier",
			IssueDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
			Total:     decimal.Zero,
		},
	}
}

func (suite *SpreadsheetServiceTestSuite) TestImport_SavesValidInvoicesInOneTransaction() {
	var saved []domain.Invoice
	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepo.On("SaveInvoicesInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]domain.Invoice) }).
		Return(nil).Once()
	suite.mockRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTracker.On("Enqueue", "user-1", "invoices_imported", mock.Anything).Once()

	result, err := suite.service.ImportInvoices(suite.ctx, "user-1", spreadsheet.FormatCSV, strings.NewReader(importCSV), false)

	suite.Require().NoError(err)
	suite.False(result.DryRun)
	suite.Equal(2, result.Imported)
	suite.Len(result.InvoiceIDs, 2)
	suite.Require().Len(result.Rejected, 1)
	suite.Equal("B", result.Rejected[0].Reference)
	suite.Equal(4, result.Rejected[0].Row)

	suite.Require().Len(saved, 2)
	suite.Equal("Acme", saved[0].CounterpartyName)
	suite.Equal("user-1", saved[0].OwnerID)
	suite.Len(saved[0].LineItems, 2)
	suite.Equal("220", saved[0].Total.String())
	suite.Equal(sheetNow, saved[0].CreatedAt)
	suite.Equal("7.5", saved[1].Total.String())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTracker.AssertExpectations(suite.T())
}

func (suite *SpreadsheetServiceTestSuite) TestImport_DryRunSavesNothing() {
	result, err := suite.service.ImportInvoices(suite.ctx, "user-1", spreadsheet.FormatCSV, strings.NewReader(importCSV), true)

	suite.Require().NoError(err)
	suite.True(result.DryRun)
	suite.Equal(0, result.Imported)
	suite.Len(result.InvoiceIDs, 2)
	suite.Len(result.Rejected, 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockTracker.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SpreadsheetServiceTestSuite) TestImport_RollsBackOnSaveError() {
	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepo.On("SaveInvoicesInTx", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ImportInvoices(suite.ctx, "user-1", spreadsheet.FormatCSV, strings.NewReader(importCSV), false)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SpreadsheetServiceTestSuite) TestImport_MissingColumns() {
	_, err := suite.service.ImportInvoices(suite.ctx, "user-1", spreadsheet.FormatCSV, strings.NewReader("Reference,Notes\nA,hello\n"), false)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "missing columns")
}

func (suite *SpreadsheetServiceTestSuite) TestExport_SortsByIssueDate() {
	suite.mockRepo.On("FindAllInvoicesByOwner", mock.Anything, "user-1").Return(storedInvoices(), nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportInvoices(suite.ctx, "user-1", spreadsheet.FormatCSV, &buf)

	suite.Require().NoError(err)
	rows, err := spreadsheet.Decode(&buf, spreadsheet.FormatCSV)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(spreadsheet.Header, rows[0])
	suite.Equal("early", rows[1][0])
	suite.Equal("late", rows[2][0])
}

func (suite *SpreadsheetServiceTestSuite) TestExportToGoogleSheet() {
	suite.mockRepo.On("FindAllInvoicesByOwner", mock.Anything, "user-1").Return(storedInvoices(), nil).Once()
	suite.mockSheets.On("WriteTable", mock.Anything, "sheet-id", spreadsheet.SheetName, mock.MatchedBy(func(rows [][]string) bool {
		return len(rows) == 3 && rows[1][0] == "early"
	})).Return("Invoices!A1:M3", nil).Once()

	resp, err := suite.service.ExportToGoogleSheet(suite.ctx, "user-1", dto.GoogleSheetExportRequest{SpreadsheetID: " sheet-id "})

	suite.Require().NoError(err)
	suite.Equal("sheet-id", resp.SpreadsheetID)
	suite.Equal("Invoices!A1:M3", resp.UpdatedRange)
	suite.Equal(3, resp.Rows)
	suite.mockSheets.AssertExpectations(suite.T())
}

func (suite *SpreadsheetServiceTestSuite) TestExportToGoogleSheet_WriterError() {
	suite.mockRepo.On("FindAllInvoicesByOwner", mock.Anything, "user-1").Return([]domain.Invoice{}, nil).Once()
	suite.mockSheets.On("WriteTable", mock.Anything, "sheet-id", "Mine", mock.Anything).Return("", assert.AnError).Once()

	_, err := suite.service.ExportToGoogleSheet(suite.ctx, "user-1", dto.GoogleSheetExportRequest{SpreadsheetID: "sheet-id", SheetName: "Mine"})

	suite.ErrorIs(err, assert.AnError)
}

func TestSpreadsheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SpreadsheetServiceTestSuite))
}

func TestExportToGoogleSheet_NotConfigured(t *testing.T) {
	svc := services.NewSpreadsheetService(new(MockInvoiceRepository))

	_, err := svc.ExportToGoogleSheet(context.Background(), "user-1", dto.GoogleSheetExportRequest{SpreadsheetID: "x"})

	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
