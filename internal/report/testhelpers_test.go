package report

import (
	"testing"
	"time"

	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(date string, ct models.CategoryType, name, amount string) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:         d,
		CategoryType: ct,
		CategoryName: name,
		Amount:       decimal.RequireFromString(amount),
	}
}

func month(year int, m time.Month) models.MonthKey {
	return models.MonthKey{Year: year, Month: m}
}

func assertMoney(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(got),
		"expected %s, got %s", expected, got.String())
}

// scenario is the three-transaction ledger used across the package tests.
func scenario() []models.Transaction {
	return []models.Transaction{
		tx("2024-01-10", models.Income, "Salary", "2000.00"),
		tx("2024-01-15", models.Expense, "Rent", "800.00"),
		tx("2024-02-01", models.Expense, "Groceries", "150.00"),
	}
}
