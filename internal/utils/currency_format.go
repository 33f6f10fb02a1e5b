package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount with two decimals, keeping any extra
// precision the amount actually carries.
// Example: 100 returns "100.00", 0.125 returns "0.125"
func FormatAmount(amount decimal.Decimal) string {
	if amount.Equal(amount.Round(2)) {
		return amount.StringFixed(2)
	}
	return amount.String()
}
