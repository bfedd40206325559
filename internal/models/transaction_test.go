package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		input    string
		expected CategoryType
		wantErr  bool
	}{
		{input: "Income", expected: Income},
		{input: "expense", expected: Expense},
		{input: " INCOME ", expected: Income},
		{input: "Transfer", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategoryType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTransaction_Month(t *testing.T) {
	tx := Transaction{
		Date:         time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		CategoryType: Expense,
		CategoryName: "Groceries",
		Amount:       decimal.RequireFromString("150.00"),
	}

	assert.Equal(t, MonthKey{Year: 2024, Month: time.February}, tx.Month())
	assert.True(t, tx.IsExpense())
	assert.False(t, tx.IsIncome())
}
