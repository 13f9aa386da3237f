// Package store persists the canonical per-user transaction records and
// loads the categorization configuration files.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/models"

	"gopkg.in/yaml.v3"
)

// TransactionStore is the persistence boundary of the ingestion pipeline.
type TransactionStore interface {
	// ListByUser returns every stored transaction for the user.
	ListByUser(userID string) ([]models.Transaction, error)

	// Insert stores a new transaction.
	Insert(tx models.Transaction) error

	// Update replaces the stored transaction with the same ID.
	Update(tx models.Transaction) error
}

// PersistenceError is a failed read or write against the store.
type PersistenceError struct {
	Op     string
	UserID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// userLedger is the on-disk YAML document holding one user's transactions.
type userLedger struct {
	Transactions []models.Transaction `yaml:"transactions"`
}

// FileStore keeps one YAML file per user under a data directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
	log logging.Logger
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileStore{dir: dir, log: logger}
}

func (s *FileStore) userFile(userID string) string {
	// User IDs come from configuration, not the filesystem; still keep
	// them from escaping the data directory.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(userID)
	return filepath.Join(s.dir, fmt.Sprintf("transactions_%s.yaml", safe))
}

// ListByUser returns every stored transaction for the user, oldest first.
func (s *FileStore) ListByUser(userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLedger(userID)
}

func (s *FileStore) readLedger(userID string) ([]models.Transaction, error) {
	data, err := os.ReadFile(s.userFile(userID))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.WithField("user", userID).Debug("No ledger file yet, starting empty")
			return []models.Transaction{}, nil
		}
		return nil, &PersistenceError{Op: "read", UserID: userID, Err: err}
	}

	var ledger userLedger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, &PersistenceError{Op: "decode", UserID: userID, Err: err}
	}

	sort.SliceStable(ledger.Transactions, func(i, j int) bool {
		return ledger.Transactions[i].Date.Before(ledger.Transactions[j].Date)
	})
	return ledger.Transactions, nil
}

func (s *FileStore) writeLedger(userID string, transactions []models.Transaction) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return &PersistenceError{Op: "mkdir", UserID: userID, Err: err}
	}

	data, err := yaml.Marshal(userLedger{Transactions: transactions})
	if err != nil {
		return &PersistenceError{Op: "encode", UserID: userID, Err: err}
	}

	if err := os.WriteFile(s.userFile(userID), data, 0o600); err != nil {
		return &PersistenceError{Op: "write", UserID: userID, Err: err}
	}
	return nil
}

// Insert stores a new transaction.
func (s *FileStore) Insert(tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.readLedger(tx.UserID)
	if err != nil {
		return err
	}
	transactions = append(transactions, tx)
	return s.writeLedger(tx.UserID, transactions)
}

// Update replaces the stored transaction carrying the same ID.
func (s *FileStore) Update(tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.readLedger(tx.UserID)
	if err != nil {
		return err
	}

	for i := range transactions {
		if transactions[i].ID == tx.ID {
			transactions[i] = tx
			return s.writeLedger(tx.UserID, transactions)
		}
	}
	return &PersistenceError{Op: "update", UserID: tx.UserID, Err: fmt.Errorf("transaction %s not found", tx.ID)}
}
