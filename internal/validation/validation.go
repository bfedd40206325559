// Package validation turns raw entry-form fields into transaction candidates.
package validation

import (
	"strings"

	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Input holds the four raw fields collected by an entry form.
type Input struct {
	Date         string `json:"date" csv:"Date"`
	CategoryType string `json:"category_type" csv:"Type"`
	CategoryName string `json:"category_name" csv:"Category"`
	Amount       string `json:"amount" csv:"Amount"`
}

// Validator checks raw input. It holds no state; the zero value is ready to
// use.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns a transaction candidate (ID zero) or a
// *ledgererror.ValidationError. The category type selector is checked first,
// then the category name, the amount and the date; the first failure wins.
func (v *Validator) Validate(in Input) (models.Transaction, error) {
	categoryType, err := models.ParseCategoryType(in.CategoryType)
	if err != nil {
		return models.Transaction{}, &ledgererror.ValidationError{
			Kind:  ledgererror.InvalidCategoryType,
			Field: "category_type",
			Value: in.CategoryType,
			Err:   err,
		}
	}

	name := strings.TrimSpace(in.CategoryName)
	if name == "" {
		return models.Transaction{}, &ledgererror.ValidationError{
			Kind:  ledgererror.EmptyCategory,
			Field: "category_name",
			Value: in.CategoryName,
		}
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date, err := dateutils.ParseISODate(in.Date)
	if err != nil {
		return models.Transaction{}, &ledgererror.ValidationError{
			Kind:  ledgererror.InvalidDate,
			Field: "date",
			Value: in.Date,
			Err:   err,
		}
	}

	return models.Transaction{
		Date:         date,
		CategoryType: categoryType,
		CategoryName: name,
		Amount:       amount,
	}, nil
}

// Exponent bounds checked before any arithmetic. Rescaling a decimal with an
// extreme exponent costs time proportional to the exponent.
const (
	minAmountExponent = -32
	maxAmountExponent = 8
)

// ParseAmount parses a strictly positive amount that fits DECIMAL(10,2).
// Values with more than two significant fraction digits are rejected rather
// than rounded.
func ParseAmount(raw string) (decimal.Decimal, error) {
	invalid := func(cause error) error {
		return &ledgererror.ValidationError{
			Kind:  ledgererror.InvalidAmount,
			Field: "amount",
			Value: raw,
			Err:   cause,
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, invalid(err)
	}
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Decimal{}, invalid(nil)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, invalid(nil)
	}
	if !models.HasMoneyPrecision(amount) {
		return decimal.Decimal{}, invalid(nil)
	}
	if amount.GreaterThanOrEqual(models.MaxAmount) {
		return decimal.Decimal{}, invalid(nil)
	}
	return amount, nil
}
