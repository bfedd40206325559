// Package models provides the data structures shared across the ledger.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType says whether a transaction adds to or subtracts from the
// balance. It is a closed enumeration.
type CategoryType string

const (
	Income  CategoryType = "Income"
	Expense CategoryType = "Expense"
)

// CategoryTypes lists every valid CategoryType.
var CategoryTypes = []CategoryType{Income, Expense}

// ParseCategoryType maps user input onto the enumeration. Matching ignores
// case so that CLI input like "income" is accepted.
func ParseCategoryType(s string) (CategoryType, error) {
	s = strings.TrimSpace(s)
	for _, ct := range CategoryTypes {
		if strings.EqualFold(string(ct), s) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown category type %q (expected Income or Expense)", s)
}

// Valid reports whether ct is one of the enumerated values.
func (ct CategoryType) Valid() bool {
	return ct == Income || ct == Expense
}

// Transaction is one immutable ledger record. Amount is always positive; the
// direction is carried by CategoryType alone. ID is zero until the store
// assigns one.
type Transaction struct {
	ID           int64           `json:"id" yaml:"id"`
	Date         time.Time       `json:"date" yaml:"date"`
	CategoryType CategoryType    `json:"category_type" yaml:"category_type"`
	CategoryName string          `json:"category_name" yaml:"category_name"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
}

// Month returns the grouping key of the transaction's date.
func (t Transaction) Month() MonthKey {
	return MonthKeyOf(t.Date)
}

// IsIncome reports whether the transaction is an income.
func (t Transaction) IsIncome() bool {
	return t.CategoryType == Income
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.CategoryType == Expense
}
