package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceMappingKeepsLineItemOrder(t *testing.T) {
	notes := "net 30"
	inv := domain.Invoice{
		InvoiceID: "inv-1",
		OwnerID:   "user-1",
		Direction: domain.Outgoing,
		Status:    domain.StatusPending,
		IssueDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Notes:     &notes,
		Total:     decimal.NewFromInt(30),
		LineItems: []domain.LineItem{
			{Description: "first", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
			{Description: "second", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	}

	row, items := ToModelInvoice(inv)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, "inv-1", items[1].InvoiceID)
	assert.True(t, row.Notes.Valid)

	back := ToDomainInvoice(row, items)
	assert.Equal(t, "first", back.LineItems[0].Description)
	assert.Equal(t, "second", back.LineItems[1].Description)
	require.NotNil(t, back.Notes)
	assert.Equal(t, "net 30", *back.Notes)
	assert.Equal(t, domain.Outgoing, back.Direction)
}

func TestUserMappingNullableFields(t *testing.T) {
	google := domain.User{UserID: "u", Email: "a@b.c", AuthProvider: domain.ProviderGoogle}
	row := ToModelUser(google)
	assert.False(t, row.PasswordHash.Valid)
	assert.False(t, row.RefreshTokenHash.Valid)

	back := ToDomainUser(row)
	assert.Nil(t, back.PasswordHash)
	assert.Nil(t, back.RefreshTokenExpiryTime)
	assert.Equal(t, domain.ProviderGoogle, back.AuthProvider)
}
