package validation

import (
	"errors"
	"testing"
	"time"

	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		CategoryType: "Expense",
		CategoryName: "Groceries",
		Amount:       "12.50",
		Date:         "2024-03-15",
	}
}

func TestValidate_Success(t *testing.T) {
	tx, err := NewValidator().Validate(validInput())
	require.NoError(t, err)

	assert.Zero(t, tx.ID)
	assert.Equal(t, models.Expense, tx.CategoryType)
	assert.Equal(t, "Groceries", tx.CategoryName)
	assert.Equal(t, "12.50", models.FormatMoney(tx.Amount))
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), tx.Date)
}

func TestValidate_TrimsCategoryName(t *testing.T) {
	in := validInput()
	in.CategoryName = "  Rent \t"
	tx, err := NewValidator().Validate(in)
	require.NoError(t, err)
	assert.Equal(t, "Rent", tx.CategoryName)
}

func TestValidate_Amount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{amount: "12.50"},
		{amount: "0.01"},
		{amount: "7"},
		{amount: " 99.9 "},
		{amount: "12.500"},
		{amount: "99999999.99"},
		{amount: "0", wantErr: true},
		{amount: "0.00", wantErr: true},
		{amount: "-5.00", wantErr: true},
		{amount: "abc", wantErr: true},
		{amount: "", wantErr: true},
		{amount: "12.345", wantErr: true},
		{amount: "100000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			in := validInput()
			in.Amount = tt.amount
			_, err := NewValidator().Validate(in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ledgererror.ErrInvalidAmount), "got %v", err)
		})
	}
}

func TestValidate_Date(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{date: "2024-03-15"},
		{date: "2024-02-29"},
		{date: "2024-13-01", wantErr: true},
		{date: "not-a-date", wantErr: true},
		{date: "2023-02-29", wantErr: true},
		{date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			in := validInput()
			in.Date = tt.date
			_, err := NewValidator().Validate(in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			kind, ok := ledgererror.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, ledgererror.InvalidDate, kind)
			assert.False(t, errors.Is(err, ledgererror.ErrInvalidAmount))
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected ledgererror.ValidationKind
	}{
		{
			name:     "unknown type before everything else",
			input:    Input{CategoryType: "Transfer", CategoryName: "", Amount: "abc", Date: "x"},
			expected: ledgererror.InvalidCategoryType,
		},
		{
			name:     "empty name before bad amount",
			input:    Input{CategoryType: "Income", CategoryName: "   ", Amount: "abc", Date: "x"},
			expected: ledgererror.EmptyCategory,
		},
		{
			name:     "bad amount before bad date",
			input:    Input{CategoryType: "Income", CategoryName: "Salary", Amount: "-1", Date: "x"},
			expected: ledgererror.InvalidAmount,
		},
		{
			name:     "bad date last",
			input:    Input{CategoryType: "Income", CategoryName: "Salary", Amount: "1", Date: "2024-13-01"},
			expected: ledgererror.InvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValidator().Validate(tt.input)
			kind, ok := ledgererror.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestParseAmount_NoCoercion(t *testing.T) {
	_, err := ParseAmount("12.345")
	require.Error(t, err)

	var ve *ledgererror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "amount", ve.Field)
	assert.Equal(t, "12.345", ve.Value)
}

func TestParseAmount_ExponentBounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "tiny exponent", raw: "1e-2000000", wantErr: true},
		{name: "huge exponent", raw: "1e2000000", wantErr: true},
		{name: "just past the fraction bound", raw: "1e-33", wantErr: true},
		{name: "exponent at max but too large", raw: "1e8", wantErr: true},
		{name: "scientific notation in range", raw: "1.5e3", want: "1500.00"},
		{name: "trailing zeros", raw: "12.5000000000", want: "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ledgererror.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, models.FormatMoney(got))
		})
	}
}
