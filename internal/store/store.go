// Package store provides the ledger's append-only transaction storage.
//
// Callers never hold a connection between operations: every operation calls
// Store.Acquire, does its work on the returned Conn and releases it with a
// deferred Conn.Release, so the connection is returned on every exit path.
package store

import (
	"context"
	"fmt"

	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store hands out scoped connections to the ledger.
type Store interface {
	// Acquire returns a connection dedicated to one operation.
	Acquire(ctx context.Context) (Conn, error)
	// Close releases every resource held by the store.
	Close() error
}

// Conn is one acquired connection. All methods return
// *ledgererror.DataAccessError on failure.
type Conn interface {
	// Insert appends tx and returns it with its store-assigned ID.
	Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// InsertBatch appends all transactions atomically: either every row is
	// stored or none is.
	InsertBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error)
	// ListAll returns every stored transaction in insertion order.
	ListAll(ctx context.Context) ([]models.Transaction, error)
	// Release returns the connection to the store.
	Release() error
}

// Options configures Open.
type Options struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

// Open creates the store selected by opts.Driver and makes sure its schema
// exists.
func Open(ctx context.Context, opts Options, logger logging.Logger) (Store, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return NewSQLiteStore(opts.SQLitePath, logger)
	case DriverPostgres:
		return NewPostgresStore(ctx, opts.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", opts.Driver)
	}
}
