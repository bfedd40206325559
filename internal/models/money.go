package models

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fraction digits every monetary value carries.
const MoneyPlaces = 2

// MaxAmount is the smallest amount that no longer fits the store's
// DECIMAL(10,2) column.
var MaxAmount = decimal.New(1, 8)

// FormatMoney renders an amount with exactly two fraction digits. Rounding is
// half away from zero (decimal.StringFixed) and the output never uses
// scientific notation.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces)
}

// HasMoneyPrecision reports whether amount can be represented with two
// fraction digits without losing information.
func HasMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyPlaces))
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
