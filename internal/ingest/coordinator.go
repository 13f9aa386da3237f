// Package ingest consumes batches of source records and persists them
// idempotently: re-running ingestion over an unchanged batch never
// duplicates a transaction and never touches a reviewed category.
package ingest

import (
	"fmt"
	"sync"
	"time"

	"omfin/ledger-sync/internal/categorizer"
	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/models"
	"omfin/ledger-sync/internal/similarity"
	"omfin/ledger-sync/internal/store"
	"omfin/ledger-sync/internal/textutils"

	"github.com/google/uuid"
)

// Result reports exactly what one ingestion pass did, so callers can tell
// "nothing new" apart from "nothing fetched".
type Result struct {
	Total           int
	Inserted        int
	MatchedExisting int
	Ambiguous       int
	Errors          []string
}

// Coordinator performs identity resolution against the existing store and
// persists new or refreshed transactions. Ingestion is serialized per user;
// different users proceed in parallel.
type Coordinator struct {
	store    store.TransactionStore
	resolver *categorizer.Resolver
	log      logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCoordinator creates a Coordinator over the given store and resolver.
func NewCoordinator(txStore store.TransactionStore, resolver *categorizer.Resolver, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		store:    txStore,
		resolver: resolver,
		log:      logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing ingestion for one user.
func (c *Coordinator) userLock(userID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[userID] = lock
	}
	return lock
}

// Ingest processes the batch in input order. Malformed records are skipped
// and reported; a store that cannot be read at all fails the whole batch.
func (c *Coordinator) Ingest(userID string, records []models.SourceRecord) (Result, error) {
	lock := c.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	result := Result{Total: len(records)}

	existing, err := c.store.ListByUser(userID)
	if err != nil {
		return result, fmt.Errorf("loading transactions for user %s: %w", userID, err)
	}

	log := c.log.WithField("user", userID)
	now := time.Now().UTC()

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			log.WithError(err).Warn("Skipping malformed source record")
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if match := findMatch(existing, rec); match != nil {
			refreshed := refresh(*match, rec, now)
			if err := c.store.Update(refreshed); err != nil {
				log.WithError(err).WithField("transaction", match.ID).Error("Failed to refresh matched transaction")
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			*match = refreshed
			result.MatchedExisting++
			continue
		}

		resolution := c.resolver.Resolve(rec)
		if resolution.Ambiguous {
			result.Ambiguous++
		}

		tx := models.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Date:        rec.Date,
			Amount:      rec.Amount,
			Type:        rec.Type,
			Description: rec.Description,
			Merchant:    textutils.NormalizeMerchant(rec.Description),
			Category:    resolution.Category,
			ExternalRef: rec.ExternalRef,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := c.store.Insert(tx); err != nil {
			log.WithError(err).WithField("description", rec.Description).Error("Failed to insert transaction")
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		// Inserted records take part in matching for the rest of the
		// batch, so a near-identical row later in the same batch dedups.
		existing = append(existing, tx)
		result.Inserted++
	}

	log.WithFields(
		logging.F("total", result.Total),
		logging.F("inserted", result.Inserted),
		logging.F("matched", result.MatchedExisting),
		logging.F("errors", len(result.Errors)),
	).Info("Ingestion pass complete")

	return result, nil
}

// findMatch looks for a stored transaction that denotes the same financial
// event as the record: external reference equality when the source supplies
// one, otherwise same calendar day, same amount and type, and a fuzzy
// merchant match on the descriptions.
//
// Without a stable upstream row id, two genuinely distinct same-day
// purchases of the same amount at the same merchant collapse into one
// record. Known collision risk, preserved as observed upstream behavior.
func findMatch(existing []models.Transaction, rec models.SourceRecord) *models.Transaction {
	if rec.ExternalRef != "" {
		for i := range existing {
			if existing[i].ExternalRef != "" && existing[i].ExternalRef == rec.ExternalRef {
				return &existing[i]
			}
		}
	}

	for i := range existing {
		tx := &existing[i]
		if !tx.SameDay(rec.Date) || tx.Type != rec.Type || !tx.Amount.Equal(rec.Amount) {
			continue
		}
		if similarity.IsSameMerchant(tx.Description, rec.Description) {
			return tx
		}
	}
	return nil
}

// refresh carries the re-synced source values onto a matched transaction.
// Category and CategoryOverride are left untouched unconditionally; that is
// the override-preservation invariant, not an optimization.
func refresh(tx models.Transaction, rec models.SourceRecord, now time.Time) models.Transaction {
	tx.Merchant = textutils.NormalizeMerchant(tx.Description)
	if tx.ExternalRef == "" {
		tx.ExternalRef = rec.ExternalRef
	}
	tx.UpdatedAt = now
	return tx
}
