package report

import (
	"fmt"
	"strings"

	"fjacquet/expense-ledger/internal/models"
)

// Formatter renders a Report as display lines.
type Formatter struct {
	title string
}

// NewFormatter creates a Formatter; an empty title falls back to
// models.DefaultReportTitle.
func NewFormatter(title string) *Formatter {
	if strings.TrimSpace(title) == "" {
		title = models.DefaultReportTitle
	}
	return &Formatter{title: title}
}

// Lines renders the report in a fixed order: title, balance, incomes per
// month, expenses per month with their detail lines, overall totals. Months
// appear in the report's map order. Blank strings are separator lines.
func (f *Formatter) Lines(r *Report) []string {
	lines := []string{
		f.title,
		fmt.Sprintf("Available Balance: %s", models.FormatMoney(r.AvailableBalance)),
		"",
		"Incomes:",
	}

	for _, month := range r.IncomeByMonth.Keys() {
		lines = append(lines, fmt.Sprintf("Monthly Income in %s: %s",
			month, models.FormatMoney(r.MonthlyIncomeTotal(month))))
	}

	lines = append(lines, "", "Expenses:")
	for _, month := range r.ExpensesByMonth.Keys() {
		lines = append(lines,
			fmt.Sprintf("Total Expenses in %s: %s", month, models.FormatMoney(r.MonthlyExpenseTotal(month))),
			"Details:",
		)
		items, _ := r.ExpensesByMonth.Get(month)
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s: %s", item.CategoryName, models.FormatMoney(item.Amount)))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Overall Income: %s", models.FormatMoney(r.OverallIncome)),
		fmt.Sprintf("Overall Expenses: %s", models.FormatMoney(r.OverallExpenses)),
	)
	return lines
}

// Text joins Lines with newlines.
func (f *Formatter) Text(r *Report) string {
	return strings.Join(f.Lines(r), "\n") + "\n"
}
