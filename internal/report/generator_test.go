package report

import (
	"encoding/json"
	"testing"

	"fjacquet/expense-ledger/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestGenerator() *Generator {
	return NewGenerator(NewFormatter(""), logging.NewMockLogger())
}

func TestGenerator_Document(t *testing.T) {
	doc := newTestGenerator().Document(Aggregate(scenario()))

	assert.Equal(t, "Financial Report", doc.Title)
	assert.Equal(t, "1050.00", doc.AvailableBalance)
	assert.Equal(t, []MonthIncome{{Month: "2024-01", Total: "2000.00"}}, doc.Incomes)
	assert.Equal(t, []MonthExpenses{
		{Month: "2024-01", Total: "800.00", Details: []ExpenseDetail{{Category: "Rent", Amount: "800.00"}}},
		{Month: "2024-02", Total: "150.00", Details: []ExpenseDetail{{Category: "Groceries", Amount: "150.00"}}},
	}, doc.Expenses)
	assert.Equal(t, "2000.00", doc.OverallIncome)
	assert.Equal(t, "950.00", doc.OverallExpenses)
}

func TestGenerator_Generate(t *testing.T) {
	g := newTestGenerator()
	r := Aggregate(scenario())

	t.Run("text", func(t *testing.T) {
		out, err := g.Generate(r, FormatText)
		require.NoError(t, err)
		assert.Contains(t, string(out), "Available Balance: 1050.00\n")
	})

	t.Run("json keeps month order", func(t *testing.T) {
		out, err := g.Generate(r, FormatJSON)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, json.Unmarshal(out, &doc))
		require.Len(t, doc.Expenses, 2)
		assert.Equal(t, "2024-01", doc.Expenses[0].Month)
		assert.Equal(t, "2024-02", doc.Expenses[1].Month)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := g.Generate(r, FormatYAML)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, yaml.Unmarshal(out, &doc))
		assert.Equal(t, "950.00", doc.OverallExpenses)
		assert.Equal(t, "Groceries", doc.Expenses[1].Details[0].Category)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := g.Generate(r, "xml")
		assert.EqualError(t, err, "unsupported report format: xml")
	})
}

func TestGenerator_EmptyReportHasEmptyLists(t *testing.T) {
	out, err := newTestGenerator().Generate(Aggregate(nil), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"incomes": []`)
	assert.Contains(t, string(out), `"expenses": []`)
	assert.Contains(t, string(out), `"available_balance": "0.00"`)
}

func TestGenerator_LogsFormat(t *testing.T) {
	tests := []struct {
		format string
	}{
		{format: FormatText},
		{format: FormatJSON},
		{format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			logger := logging.NewMockLogger()
			g := NewGenerator(NewFormatter(""), logger)

			_, err := g.Generate(Aggregate(scenario()), tt.format)
			require.NoError(t, err)

			entries := logger.EntriesByLevel("DEBUG")
			require.NotEmpty(t, entries)
			assert.Equal(t, "Rendering report", entries[0].Message)
			assert.Contains(t, entries[0].Fields, logging.F(logging.FieldFormat, tt.format))
		})
	}
}
