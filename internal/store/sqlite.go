package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fjacquet/expense-ledger/internal/fileutils"
	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	_ "modernc.org/sqlite"
)

const (
	sqliteInsert = `INSERT INTO transactions (date, category_type, category_name, amount) VALUES (?, ?, ?, ?)`
	sqliteList   = `SELECT id, date, category_type, category_name, amount FROM transactions ORDER BY id`

	sqliteBusyTimeout = "_pragma=busy_timeout(5000)"
)

// SQLiteStore keeps the ledger in a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewSQLiteStore(path string, logger logging.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path must not be empty")
	}
	if err := fileutils.EnsureParentDirectory(path); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?%s", path, sqliteBusyTimeout)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite store ready",
		logging.F(logging.FieldStoreDriver, DriverSQLite),
		logging.F(logging.FieldFile, path))

	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Acquire checks out one connection from the pool.
func (s *SQLiteStore) Acquire(ctx context.Context) (Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, ledgererror.NewDataAccessError("acquire", err)
	}
	return &sqliteConn{conn: conn}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type sqliteConn struct {
	conn *sql.Conn
}

func (c *sqliteConn) Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if err := validateForInsert(tx); err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	r := toRow(tx)
	res, err := c.conn.ExecContext(ctx, sqliteInsert, r.Date, r.CategoryType, r.CategoryName, r.Amount)
	if err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	tx.ID = id
	return tx, nil
}

func (c *sqliteConn) InsertBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	for _, tx := range txs {
		if err := validateForInsert(tx); err != nil {
			return nil, ledgererror.NewDataAccessError("insert batch", err)
		}
	}

	dbTx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, ledgererror.NewDataAccessError("insert batch", err)
	}
	defer dbTx.Rollback() //nolint:errcheck

	stmt, err := dbTx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return nil, ledgererror.NewDataAccessError("insert batch", err)
	}
	defer stmt.Close()

	stored := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		r := toRow(tx)
		res, err := stmt.ExecContext(ctx, r.Date, r.CategoryType, r.CategoryName, r.Amount)
		if err != nil {
			return nil, ledgererror.NewDataAccessError("insert batch", err)
		}
		if tx.ID, err = res.LastInsertId(); err != nil {
			return nil, ledgererror.NewDataAccessError("insert batch", err)
		}
		stored = append(stored, tx)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, ledgererror.NewDataAccessError("insert batch", err)
	}
	return stored, nil
}

func (c *sqliteConn) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := c.conn.QueryContext(ctx, sqliteList)
	if err != nil {
		return nil, ledgererror.NewDataAccessError("list", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ID, &r.Date, &r.CategoryType, &r.CategoryName, &r.Amount); err != nil {
			return nil, ledgererror.NewDataAccessError("list", err)
		}
		tx, err := r.toTransaction()
		if err != nil {
			return nil, ledgererror.NewDataAccessError("list", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, ledgererror.NewDataAccessError("list", err)
	}
	return txs, nil
}

func (c *sqliteConn) Release() error {
	return c.conn.Close()
}
