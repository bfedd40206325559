// Package common provides the CSV exchange format shared by import and
// export.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/fileutils"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// CSVCodec reads and writes ledger rows with the columns
// Date,Type,Category,Amount. Rows are kept as raw strings so every imported
// value goes through the validator.
type CSVCodec struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVCodec creates a codec. A zero delimiter means DefaultDelimiter.
func NewCSVCodec(delimiter rune, logger logging.Logger) *CSVCodec {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &CSVCodec{delimiter: delimiter, logger: logger}
}

// Delimiter returns the field separator in use.
func (c *CSVCodec) Delimiter() rune {
	return c.delimiter
}

// ReadRows decodes every data row of r. The header row is required.
func (c *CSVCodec) ReadRows(r io.Reader) ([]validation.Input, error) {
	reader := csv.NewReader(r)
	reader.Comma = c.delimiter
	reader.TrimLeadingSpace = true

	var rows []validation.Input
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadFile decodes the CSV file at path.
func (c *CSVCodec) ReadFile(path string) ([]validation.Input, error) {
	c.logger.Info("Reading CSV file", logging.F(logging.FieldFile, path))

	file, err := os.Open(path) // #nosec G304 -- path comes from the user's command line
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := c.ReadRows(file)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteRows encodes transactions to w, header first, in the given order.
func (c *CSVCodec) WriteRows(w io.Writer, transactions []models.Transaction) error {
	rows := make([]validation.Input, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, RowFromTransaction(tx))
	}

	writer := csv.NewWriter(w)
	writer.Comma = c.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes transactions to a CSV file, creating its directory.
func (c *CSVCodec) WriteFile(path string, transactions []models.Transaction) error {
	c.logger.Info("Writing transactions to CSV file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(transactions)))

	if err := fileutils.EnsureParentDirectory(path); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- path comes from the user's command line
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return c.WriteRows(file, transactions)
}

// RowFromTransaction renders tx in the exchange format.
func RowFromTransaction(tx models.Transaction) validation.Input {
	return validation.Input{
		Date:         dateutils.ToISODate(tx.Date),
		CategoryType: string(tx.CategoryType),
		CategoryName: tx.CategoryName,
		Amount:       models.FormatMoney(tx.Amount),
	}
}
