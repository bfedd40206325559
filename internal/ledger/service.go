// Package ledger implements the ledger's operations on top of an injected
// store: fetching and aggregating the report, adding validated transactions,
// drawing the expense chart and moving transactions in and out as CSV.
//
// Every operation acquires its own store connection and releases it before
// returning, whatever the outcome.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/expense-ledger/internal/chart"
	"fjacquet/expense-ledger/internal/common"
	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/store"
	"fjacquet/expense-ledger/internal/validation"
)

// Service is the ledger's use-case layer.
type Service struct {
	store     store.Store
	validator *validation.Validator
	generator *report.Generator
	charts    *chart.Renderer
	csv       *common.CSVCodec
	logger    logging.Logger
}

// NewService wires a Service from its collaborators.
func NewService(
	st store.Store,
	validator *validation.Validator,
	generator *report.Generator,
	charts *chart.Renderer,
	csv *common.CSVCodec,
	logger logging.Logger,
) *Service {
	return &Service{
		store:     st,
		validator: validator,
		generator: generator,
		charts:    charts,
		csv:       csv,
		logger:    logger,
	}
}

// Snapshot is everything a display needs for one refresh. Chart is nil when
// there are no expenses to plot.
type Snapshot struct {
	Report *report.Report
	Lines  []string
	Chart  []byte
}

func (s *Service) withConn(ctx context.Context, op string, fn func(store.Conn) error) error {
	conn, err := s.store.Acquire(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to acquire store connection",
			logging.F(logging.FieldOperation, op))
		return err
	}
	defer func() {
		if err := conn.Release(); err != nil {
			s.logger.WithError(err).Warn("Failed to release store connection",
				logging.F(logging.FieldOperation, op))
		}
	}()
	return fn(conn)
}

func (s *Service) listAll(ctx context.Context, op string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.withConn(ctx, op, func(conn store.Conn) error {
		var err error
		txs, err = conn.ListAll(ctx)
		return err
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to read transactions",
			logging.F(logging.FieldOperation, op))
		return nil, ledgererror.NewDataAccessError(op, err)
	}
	return txs, nil
}

// FetchAndProcess reads the whole ledger and aggregates it. A store failure
// yields a *ledgererror.DataAccessError and no report.
func (s *Service) FetchAndProcess(ctx context.Context) (*report.Report, error) {
	txs, err := s.listAll(ctx, "fetch report")
	if err != nil {
		return nil, err
	}
	rep := report.Aggregate(txs)
	s.logger.Debug("Aggregated ledger",
		logging.F(logging.FieldCount, len(txs)),
		logging.F(logging.FieldMonth, rep.ExpensesByMonth.Len()))
	return rep, nil
}

// ReportLines returns the formatted report lines.
func (s *Service) ReportLines(ctx context.Context) ([]string, error) {
	rep, err := s.FetchAndProcess(ctx)
	if err != nil {
		return nil, err
	}
	return s.generator.Lines(rep), nil
}

// RenderReport returns the report in format (text, json or yaml).
func (s *Service) RenderReport(ctx context.Context, format string) ([]byte, error) {
	rep, err := s.FetchAndProcess(ctx)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(rep, format)
}

// ReportDocument returns the structured report.
func (s *Service) ReportDocument(ctx context.Context) (report.Document, error) {
	rep, err := s.FetchAndProcess(ctx)
	if err != nil {
		return report.Document{}, err
	}
	return s.generator.Document(rep), nil
}

// ExpenseChart renders the monthly expense chart. It returns chart.ErrNoData
// when the ledger holds no expenses.
func (s *Service) ExpenseChart(ctx context.Context) ([]byte, error) {
	rep, err := s.FetchAndProcess(ctx)
	if err != nil {
		return nil, err
	}
	return s.charts.FromReport(rep)
}

// Snapshot builds the report lines and chart from a single ledger read.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	rep, err := s.FetchAndProcess(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Report: rep, Lines: s.generator.Lines(rep)}

	png, err := s.charts.FromReport(rep)
	switch {
	case errors.Is(err, chart.ErrNoData):
		s.logger.Debug("No expenses to chart")
	case err != nil:
		return nil, err
	default:
		snap.Chart = png
	}
	return snap, nil
}

// AddTransaction validates in and appends it to the ledger. Validation
// failures are *ledgererror.ValidationError and never touch the store.
func (s *Service) AddTransaction(ctx context.Context, in validation.Input) (models.Transaction, error) {
	candidate, err := s.validator.Validate(in)
	if err != nil {
		var ve *ledgererror.ValidationError
		if errors.As(err, &ve) {
			s.logger.Warn("Rejected transaction",
				logging.F(logging.FieldField, ve.Field),
				logging.F(logging.FieldError, err.Error()))
		}
		return models.Transaction{}, err
	}

	var stored models.Transaction
	err = s.withConn(ctx, "add transaction", func(conn store.Conn) error {
		var err error
		stored, err = conn.Insert(ctx, candidate)
		return err
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to store transaction")
		return models.Transaction{}, ledgererror.NewDataAccessError("add transaction", err)
	}

	s.logger.Info("Transaction added",
		logging.F(logging.FieldTransactionID, stored.ID),
		logging.F(logging.FieldCategoryType, string(stored.CategoryType)),
		logging.F(logging.FieldCategory, stored.CategoryName))
	return stored, nil
}

// ListTransactions returns the whole ledger in store-read order.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.listAll(ctx, "list transactions")
}

// Import validates every CSV row of r and, when all are valid, stores them
// in one batch. The first invalid row is reported as a
// *ledgererror.ImportError and nothing is stored.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]models.Transaction, error) {
	rows, err := s.csv.ReadRows(r)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, rows)
}

// ImportFile imports the CSV file at path.
func (s *Service) ImportFile(ctx context.Context, path string) ([]models.Transaction, error) {
	rows, err := s.csv.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, rows)
}

func (s *Service) importRows(ctx context.Context, rows []validation.Input) ([]models.Transaction, error) {
	candidates := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := s.validator.Validate(row)
		if err != nil {
			return nil, &ledgererror.ImportError{Row: i + 1, Err: err}
		}
		candidates = append(candidates, tx)
	}
	if len(candidates) == 0 {
		s.logger.Info("Nothing to import")
		return nil, nil
	}

	var stored []models.Transaction
	err := s.withConn(ctx, "import", func(conn store.Conn) error {
		var err error
		stored, err = conn.InsertBatch(ctx, candidates)
		return err
	})
	if err != nil {
		return nil, ledgererror.NewDataAccessError("import", err)
	}

	s.logger.Info("Imported transactions", logging.F(logging.FieldCount, len(stored)))
	return stored, nil
}

// Export writes the whole ledger to w as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	txs, err := s.listAll(ctx, "export")
	if err != nil {
		return 0, err
	}
	if err := s.csv.WriteRows(w, txs); err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	return len(txs), nil
}

// ExportFile writes the whole ledger to the CSV file at path.
func (s *Service) ExportFile(ctx context.Context, path string) (int, error) {
	txs, err := s.listAll(ctx, "export")
	if err != nil {
		return 0, err
	}
	if err := s.csv.WriteFile(path, txs); err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	return len(txs), nil
}
