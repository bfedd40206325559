// Package report turns the ledger's transactions into the financial report:
// aggregation, text formatting and structured export.
package report

import (
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// ExpenseItem is one expense line inside a month.
type ExpenseItem struct {
	CategoryName string
	Amount       decimal.Decimal
}

// Report is the aggregated view of the whole ledger. It is rebuilt on every
// request and never persisted.
type Report struct {
	AvailableBalance decimal.Decimal
	// IncomeByMonth and ExpensesByMonth are keyed independently; a month may
	// appear in one and not the other. Both iterate in the order months were
	// first seen in the input.
	IncomeByMonth   *OrderedMap[models.MonthKey, decimal.Decimal]
	ExpensesByMonth *OrderedMap[models.MonthKey, []ExpenseItem]
	OverallIncome   decimal.Decimal
	OverallExpenses decimal.Decimal
}

// Aggregate builds a Report from transactions in the order the store returned
// them. Income amounts are summed per month; expense lines are kept per month
// in input order, unsorted. All arithmetic is exact.
func Aggregate(transactions []models.Transaction) *Report {
	r := &Report{
		IncomeByMonth:   NewOrderedMap[models.MonthKey, decimal.Decimal](),
		ExpensesByMonth: NewOrderedMap[models.MonthKey, []ExpenseItem](),
	}

	for _, tx := range transactions {
		month := tx.Month()
		switch {
		case tx.IsIncome():
			total, _ := r.IncomeByMonth.Get(month)
			r.IncomeByMonth.Set(month, total.Add(tx.Amount))
		case tx.IsExpense():
			items, _ := r.ExpensesByMonth.Get(month)
			r.ExpensesByMonth.Set(month, append(items, ExpenseItem{
				CategoryName: tx.CategoryName,
				Amount:       tx.Amount,
			}))
		}
	}

	incomes := make([]decimal.Decimal, 0, r.IncomeByMonth.Len())
	r.IncomeByMonth.Each(func(_ models.MonthKey, total decimal.Decimal) {
		incomes = append(incomes, total)
	})
	r.OverallIncome = models.Sum(incomes...)

	expenses := make([]decimal.Decimal, 0, r.ExpensesByMonth.Len())
	for _, month := range r.ExpensesByMonth.Keys() {
		expenses = append(expenses, r.MonthlyExpenseTotal(month))
	}
	r.OverallExpenses = models.Sum(expenses...)

	r.AvailableBalance = r.OverallIncome.Sub(r.OverallExpenses)
	return r
}

// MonthlyExpenseTotal sums the expense lines of one month. Months with no
// expenses total zero.
func (r *Report) MonthlyExpenseTotal(month models.MonthKey) decimal.Decimal {
	items, _ := r.ExpensesByMonth.Get(month)
	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return models.Sum(amounts...)
}

// MonthlyIncomeTotal returns the income of one month, zero if none.
func (r *Report) MonthlyIncomeTotal(month models.MonthKey) decimal.Decimal {
	total, ok := r.IncomeByMonth.Get(month)
	if !ok {
		return decimal.Zero
	}
	return total
}

// MonthTotal is a month with an amount, used for chart series.
type MonthTotal struct {
	Month models.MonthKey
	Total decimal.Decimal
}

// ExpenseTotals returns the per-month expense totals in the same order the
// formatter prints them.
func (r *Report) ExpenseTotals() []MonthTotal {
	out := make([]MonthTotal, 0, r.ExpensesByMonth.Len())
	for _, month := range r.ExpensesByMonth.Keys() {
		out = append(out, MonthTotal{Month: month, Total: r.MonthlyExpenseTotal(month)})
	}
	return out
}
