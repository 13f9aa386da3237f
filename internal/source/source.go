// Package source fetches transaction rows from the upstream spreadsheet
// export, either a local CSV file or a published CSV URL.
package source

import (
	"context"
	"fmt"
	"time"

	"omfin/ledger-sync/internal/models"
)

// Snapshot is one fetched batch of source records.
type Snapshot struct {
	Records   []models.SourceRecord
	IsDemo    bool
	FetchedAt time.Time
}

// Fetcher is the upstream data-source adapter.
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// FetchError is an unreachable or failed upstream fetch. The orchestrator
// fails the run and leaves any cached snapshot untouched.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching source %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
