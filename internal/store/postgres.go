package store

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	postgresSchema = `CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    date DATE NOT NULL,
    category_type TEXT NOT NULL CHECK (category_type IN ('Income', 'Expense')),
    category_name TEXT NOT NULL,
    amount DECIMAL(10, 2) NOT NULL
)`
	postgresInsert = `INSERT INTO transactions (date, category_type, category_name, amount)
VALUES ($1::text::date, $2, $3, $4::text::numeric) RETURNING id`
	postgresList = `SELECT id, to_char(date, 'YYYY-MM-DD'), category_type, category_name, amount::text
FROM transactions ORDER BY id`
)

// PostgresStore keeps the ledger in a PostgreSQL database through a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPostgresStore connects to dsn and creates the transactions table when it
// does not exist yet.
func NewPostgresStore(ctx context.Context, dsn string, logger logging.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn must not be empty")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Debug("PostgreSQL store ready", logging.F(logging.FieldStoreDriver, DriverPostgres))
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Acquire checks out one pooled connection.
func (s *PostgresStore) Acquire(ctx context.Context) (Conn, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, ledgererror.NewDataAccessError("acquire", err)
	}
	return &postgresConn{conn: conn}, nil
}

// Close shuts the pool down.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type postgresConn struct {
	conn *pgxpool.Conn
}

func (c *postgresConn) Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if err := validateForInsert(tx); err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	r := toRow(tx)
	if err := c.conn.QueryRow(ctx, postgresInsert, r.Date, r.CategoryType, r.CategoryName, r.Amount).Scan(&tx.ID); err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	return tx, nil
}

func (c *postgresConn) InsertBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	for _, tx := range txs {
		if err := validateForInsert(tx); err != nil {
			return nil, ledgererror.NewDataAccessError("insert batch", err)
		}
	}

	stored := make([]models.Transaction, 0, len(txs))
	err := pgx.BeginFunc(ctx, c.conn, func(dbTx pgx.Tx) error {
		for _, tx := range txs {
			r := toRow(tx)
			if err := dbTx.QueryRow(ctx, postgresInsert, r.Date, r.CategoryType, r.CategoryName, r.Amount).Scan(&tx.ID); err != nil {
				return err
			}
			stored = append(stored, tx)
		}
		return nil
	})
	if err != nil {
		return nil, ledgererror.NewDataAccessError("insert batch", err)
	}
	return stored, nil
}

func (c *postgresConn) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := c.conn.Query(ctx, postgresList)
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

func (c *postgresConn) Release() error {
	c.conn.Release()
	return nil
}
