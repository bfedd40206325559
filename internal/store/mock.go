package store

import (
	"context"
	"sync"

	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/models"
)

// MockStore is an in-memory Store for tests. Each *Error field, when set,
// makes the matching operation fail with a DataAccessError wrapping it.
type MockStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	nextID       int64

	AcquireError     error
	InsertError      error
	InsertBatchError error
	ListError        error

	// Acquired and Released count connection checkouts and returns.
	Acquired int
	Released int
	Closed   bool
}

// NewMockStore returns a MockStore preloaded with txs, which receive IDs in
// order. Like the SQL stores, it keeps only the calendar date of each
// transaction.
func NewMockStore(txs ...models.Transaction) *MockStore {
	m := &MockStore{}
	for _, tx := range txs {
		m.append(tx)
	}
	return m
}

func (m *MockStore) append(tx models.Transaction) models.Transaction {
	m.nextID++
	tx.ID = m.nextID
	tx.Date = dateutils.TruncateToDate(tx.Date)
	m.transactions = append(m.transactions, tx)
	return tx
}

// Transactions returns a copy of the stored transactions.
func (m *MockStore) Transactions() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// Outstanding returns the number of acquired but unreleased connections.
func (m *MockStore) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Acquired - m.Released
}

func (m *MockStore) Acquire(_ context.Context) (Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AcquireError != nil {
		return nil, ledgererror.NewDataAccessError("acquire", m.AcquireError)
	}
	m.Acquired++
	return &mockConn{store: m}, nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

type mockConn struct {
	store    *MockStore
	released bool
}

func (c *mockConn) Insert(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.InsertError != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", c.store.InsertError)
	}
	if err := validateForInsert(tx); err != nil {
		return models.Transaction{}, ledgererror.NewDataAccessError("insert", err)
	}
	return c.store.append(tx), nil
}

func (c *mockConn) InsertBatch(_ context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.InsertBatchError != nil {
		return nil, ledgererror.NewDataAccessError("insert batch", c.store.InsertBatchError)
	}
	for _, tx := range txs {
		if err := validateForInsert(tx); err != nil {
			return nil, ledgererror.NewDataAccessError("insert batch", err)
		}
	}
	stored := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		stored = append(stored, c.store.append(tx))
	}
	return stored, nil
}

func (c *mockConn) ListAll(_ context.Context) ([]models.Transaction, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.ListError != nil {
		return nil, ledgererror.NewDataAccessError("list", c.store.ListError)
	}
	out := make([]models.Transaction, len(c.store.transactions))
	copy(out, c.store.transactions)
	return out, nil
}

func (c *mockConn) Release() error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if !c.released {
		c.released = true
		c.store.Released++
	}
	return nil
}
