// Package syncer drives one sync pass: fetch source records (or reuse the
// cached snapshot), hand them to the ingestion coordinator per user, and
// emit a completion signal for downstream consumers.
package syncer

import (
	"context"
	"errors"
	"time"

	"omfin/ledger-sync/internal/ingest"
	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/source"
)

// Status is the externally observable state of a sync run.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusFetching   Status = "fetching"
	StatusPersisting Status = "persisting"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// RunReport carries the fields the external append-only run log records for
// one sync pass.
type RunReport struct {
	Job             string    `json:"job"`
	Status          Status    `json:"status"`
	UserIDs         []string  `json:"userIds"`
	Total           int       `json:"total"`
	Inserted        int       `json:"inserted"`
	MatchedExisting int       `json:"matchedExisting"`
	ErrorCount      int       `json:"errorCount"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	DurationMS      int64     `json:"durationMs"`
}

// Orchestrator is the externally triggered control loop around the
// ingestion coordinator.
type Orchestrator struct {
	fetcher     source.Fetcher
	coordinator *ingest.Coordinator
	cache       *FetchCache
	emitter     SignalEmitter
	users       []string
	log         logging.Logger
}

// NewOrchestrator creates an Orchestrator syncing the given users from the
// fetcher. A nil fetcher makes every run a Skipped run; a nil emitter
// disables signal emission.
func NewOrchestrator(fetcher source.Fetcher, coordinator *ingest.Coordinator, cache *FetchCache, emitter SignalEmitter, users []string, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if cache == nil {
		cache = NewFetchCache()
	}
	return &Orchestrator{
		fetcher:     fetcher,
		coordinator: coordinator,
		cache:       cache,
		emitter:     emitter,
		users:       users,
		log:         logger,
	}
}

// Sync runs one pass. Without force, a cached snapshot is persisted
// directly, which re-fills an emptied store even when upstream is unchanged.
// With force, or on a cache miss, fresh records are fetched; the cache is
// only replaced by a successful fetch, so a failed fetch leaves it intact.
func (o *Orchestrator) Sync(ctx context.Context, force bool) (RunReport, error) {
	report := RunReport{
		Job:       "transaction-sync",
		Status:    StatusIdle,
		UserIDs:   o.users,
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.FinishedAt = time.Now().UTC()
		report.DurationMS = report.FinishedAt.Sub(report.StartedAt).Milliseconds()
	}()

	if o.fetcher == nil {
		o.log.Info("No source configured, skipping sync")
		report.Status = StatusSkipped
		return report, nil
	}

	report.Status = StatusFetching
	snapshot, err := o.resolveSnapshot(ctx, force)
	if err != nil {
		report.Status = StatusFailed
		return report, err
	}

	report.Status = StatusPersisting
	var runErrs []error
	for _, userID := range o.users {
		result, err := o.coordinator.Ingest(userID, snapshot.Records)
		if err != nil {
			o.log.WithError(err).WithField("user", userID).Error("Ingestion failed")
			runErrs = append(runErrs, err)
			continue
		}
		report.Total += result.Total
		report.Inserted += result.Inserted
		report.MatchedExisting += result.MatchedExisting
		report.ErrorCount += len(result.Errors)
	}

	if len(runErrs) > 0 {
		report.Status = StatusFailed
		return report, errors.Join(runErrs...)
	}

	report.Status = StatusCompleted
	o.maybeEmit(ctx, snapshot, report)
	return report, nil
}

// resolveSnapshot returns the records to persist: the cached snapshot on a
// non-forced cache hit, a fresh fetch otherwise.
func (o *Orchestrator) resolveSnapshot(ctx context.Context, force bool) (source.Snapshot, error) {
	if !force {
		if snapshot, ok := o.cache.Get(); ok {
			o.log.WithField("fetched_at", snapshot.FetchedAt).Debug("Persisting cached snapshot")
			return snapshot, nil
		}
	}

	o.log.WithField("force", force).Info("Fetching source records")
	snapshot, err := o.fetcher.Fetch(ctx)
	if err != nil {
		// Cache deliberately untouched: no partial invalidation on a
		// failed fetch.
		return source.Snapshot{}, err
	}

	o.cache.Set(snapshot)
	return snapshot, nil
}

// maybeEmit sends the completion signal after a successful non-empty run.
// At most one signal per run; a lost signal is logged, never surfaced.
func (o *Orchestrator) maybeEmit(ctx context.Context, snapshot source.Snapshot, report RunReport) {
	if len(snapshot.Records) == 0 || snapshot.IsDemo {
		return
	}
	if report.Inserted+report.MatchedExisting == 0 {
		return
	}

	signal := CompletionSignal{
		UserIDs:          report.UserIDs,
		TransactionCount: report.Inserted + report.MatchedExisting,
	}
	if err := o.emitter.Emit(ctx, signal); err != nil {
		o.log.WithError(err).Warn("Failed to emit completion signal")
	}
}
