package store

import (
	"fmt"
	"time"

	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// row is the persisted shape of a transaction: dates and amounts travel as
// text so both backends keep them exact.
type row struct {
	ID           int64
	Date         string
	CategoryType string
	CategoryName string
	Amount       string
}

func toRow(tx models.Transaction) row {
	return row{
		ID:           tx.ID,
		Date:         dateutils.ToISODate(tx.Date),
		CategoryType: string(tx.CategoryType),
		CategoryName: tx.CategoryName,
		Amount:       models.FormatMoney(tx.Amount),
	}
}

func (r row) toTransaction() (models.Transaction, error) {
	date, err := time.Parse(dateutils.DateLayoutISO, r.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d has malformed date %q: %w", r.ID, r.Date, err)
	}
	ct := models.CategoryType(r.CategoryType)
	if !ct.Valid() {
		return models.Transaction{}, fmt.Errorf("transaction %d has unknown category type %q", r.ID, r.CategoryType)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d has malformed amount %q: %w", r.ID, r.Amount, err)
	}
	return models.Transaction{
		ID:           r.ID,
		Date:         date,
		CategoryType: ct,
		CategoryName: r.CategoryName,
		Amount:       amount,
	}, nil
}

func validateForInsert(tx models.Transaction) error {
	if !tx.CategoryType.Valid() {
		return fmt.Errorf("refusing to store unknown category type %q", tx.CategoryType)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("refusing to store non-positive amount %s", tx.Amount)
	}
	return nil
}
