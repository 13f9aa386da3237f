package store

import (
	"errors"
	"sync"

	"omfin/ledger-sync/internal/models"
)

var errNotFound = errors.New("transaction not found")

// MockTransactionStore is an in-memory TransactionStore for tests, with
// error injection for each operation.
type MockTransactionStore struct {
	mu           sync.Mutex
	transactions map[string][]models.Transaction

	ListError   error
	InsertError error
	UpdateError error
}

// NewMockTransactionStore creates an empty mock store.
func NewMockTransactionStore() *MockTransactionStore {
	return &MockTransactionStore{
		transactions: make(map[string][]models.Transaction),
	}
}

// ListByUser returns a copy of the user's transactions.
func (m *MockTransactionStore) ListByUser(userID string) ([]models.Transaction, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Transaction, len(m.transactions[userID]))
	copy(result, m.transactions[userID])
	return result, nil
}

// Insert stores a new transaction.
func (m *MockTransactionStore) Insert(tx models.Transaction) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions[tx.UserID] = append(m.transactions[tx.UserID], tx)
	return nil
}

// Update replaces the stored transaction with the same ID.
func (m *MockTransactionStore) Update(tx models.Transaction) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.transactions[tx.UserID] {
		if existing.ID == tx.ID {
			m.transactions[tx.UserID][i] = tx
			return nil
		}
	}
	return &PersistenceError{Op: "update", UserID: tx.UserID, Err: errNotFound}
}

// Count returns the number of stored transactions for the user.
func (m *MockTransactionStore) Count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions[userID])
}
