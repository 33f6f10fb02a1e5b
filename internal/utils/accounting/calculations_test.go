package accounting

import (
	"testing"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(desc, qty, price string) domain.LineItem {
	return domain.LineItem{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestCalculateInvoiceTotal(t *testing.T) {
	assert.True(t, CalculateInvoiceTotal(nil).IsZero())

	items := []domain.LineItem{
		item("Consulting", "3", "120.50"),
		item("Travel", "1", "89.99"),
		item("Refund", "-1", "10"),
	}
	assert.Equal(t, "441.49", CalculateInvoiceTotal(items).String())
}

func TestValidateLineItems(t *testing.T) {
	require.NoError(t, ValidateLineItems(nil))
	require.NoError(t, ValidateLineItems([]domain.LineItem{item("Credit", "-2", "5")}))

	err := ValidateLineItems([]domain.LineItem{item("ok", "1", "1"), item("", "1", "1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line item 2")

	err = ValidateLineItems([]domain.LineItem{item("zero", "0", "1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero quantity")

	err = ValidateLineItems([]domain.LineItem{item("third", "0.33333", "3")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity 0.33333 has more than 4 decimal places")

	err = ValidateLineItems([]domain.LineItem{item("fuel", "1", "1.23456")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit price")

	// Trailing zeros beyond four places do not count.
	require.NoError(t, ValidateLineItems([]domain.LineItem{item("padded", "0.333300", "3.1000000")}))

	tooMany := make([]domain.LineItem, MaxLineItems+1)
	for i := range tooMany {
		tooMany[i] = item("x", "1", "1")
	}
	assert.Error(t, ValidateLineItems(tooMany))
}

func TestVerifyDeclaredTotal(t *testing.T) {
	items := []domain.LineItem{item("a", "2", "2.50"), item("b", "1", "5")}

	assert.NoError(t, VerifyDeclaredTotal(decimal.RequireFromString("10.00"), items))

	err := VerifyDeclaredTotal(decimal.RequireFromString("11"), items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestTotalOfFourPlaceItemsNeedsAtMostEightPlaces(t *testing.T) {
	items := []domain.LineItem{item("a", "0.3333", "0.3333"), item("b", "1.0001", "9999.9999")}
	require.NoError(t, ValidateLineItems(items))

	total := CalculateInvoiceTotal(items)
	assert.True(t, total.Equal(total.Round(2*MaxAmountPlaces)))
	assert.Equal(t, "10001.11098888", total.String())
}
