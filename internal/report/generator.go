package report

import (
	"encoding/json"
	"fmt"

	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is the structured form of a Report. Slices keep the map order and
// amounts are two-decimal strings so no consumer sees float rounding.
type Document struct {
	Title            string          `json:"title" yaml:"title"`
	AvailableBalance string          `json:"available_balance" yaml:"available_balance"`
	Incomes          []MonthIncome   `json:"incomes" yaml:"incomes"`
	Expenses         []MonthExpenses `json:"expenses" yaml:"expenses"`
	OverallIncome    string          `json:"overall_income" yaml:"overall_income"`
	OverallExpenses  string          `json:"overall_expenses" yaml:"overall_expenses"`
}

// MonthIncome is one income month of a Document.
type MonthIncome struct {
	Month string `json:"month" yaml:"month"`
	Total string `json:"total" yaml:"total"`
}

// MonthExpenses is one expense month of a Document.
type MonthExpenses struct {
	Month   string          `json:"month" yaml:"month"`
	Total   string          `json:"total" yaml:"total"`
	Details []ExpenseDetail `json:"details" yaml:"details"`
}

// ExpenseDetail is one expense line of a Document.
type ExpenseDetail struct {
	Category string `json:"category" yaml:"category"`
	Amount   string `json:"amount" yaml:"amount"`
}

// Generator renders a Report in one of the supported formats.
type Generator struct {
	formatter *Formatter
	logger    logging.Logger
}

// NewGenerator creates a Generator that uses formatter for text output.
func NewGenerator(formatter *Formatter, logger logging.Logger) *Generator {
	return &Generator{
		formatter: formatter,
		logger:    logger.WithField("component", "ReportGenerator"),
	}
}

// Document converts r into its structured form.
func (g *Generator) Document(r *Report) Document {
	doc := Document{
		Title:            g.formatter.title,
		AvailableBalance: models.FormatMoney(r.AvailableBalance),
		Incomes:          make([]MonthIncome, 0, r.IncomeByMonth.Len()),
		Expenses:         make([]MonthExpenses, 0, r.ExpensesByMonth.Len()),
		OverallIncome:    models.FormatMoney(r.OverallIncome),
		OverallExpenses:  models.FormatMoney(r.OverallExpenses),
	}

	r.IncomeByMonth.Each(func(month models.MonthKey, _ decimal.Decimal) {
		doc.Incomes = append(doc.Incomes, MonthIncome{
			Month: month.String(),
			Total: models.FormatMoney(r.MonthlyIncomeTotal(month)),
		})
	})

	r.ExpensesByMonth.Each(func(month models.MonthKey, items []ExpenseItem) {
		entry := MonthExpenses{
			Month:   month.String(),
			Total:   models.FormatMoney(r.MonthlyExpenseTotal(month)),
			Details: make([]ExpenseDetail, 0, len(items)),
		}
		for _, item := range items {
			entry.Details = append(entry.Details, ExpenseDetail{
				Category: item.CategoryName,
				Amount:   models.FormatMoney(item.Amount),
			})
		}
		doc.Expenses = append(doc.Expenses, entry)
	})

	return doc
}

// Generate renders r as text, JSON or YAML.
func (g *Generator) Generate(r *Report, format string) ([]byte, error) {
	g.logger.Debug("Rendering report", logging.F(logging.FieldFormat, format))

	switch format {
	case FormatText, "":
		return []byte(g.formatter.Text(r)), nil
	case FormatJSON:
		out, err := json.MarshalIndent(g.Document(r), "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(g.Document(r))
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Lines exposes the formatter's line rendering.
func (g *Generator) Lines(r *Report) []string {
	return g.formatter.Lines(r)
}
