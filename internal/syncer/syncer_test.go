package syncer

import (
	"context"
	"testing"
	"time"

	"omfin/ledger-sync/internal/categorizer"
	"omfin/ledger-sync/internal/ingest"
	"omfin/ledger-sync/internal/models"
	"omfin/ledger-sync/internal/source"
	"omfin/ledger-sync/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher counts fetches and can be made to fail.
type stubFetcher struct {
	snapshot source.Snapshot
	err      error
	calls    int
}

func (f *stubFetcher) Fetch(context.Context) (source.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return source.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

// stubEmitter records every emitted signal.
type stubEmitter struct {
	signals []CompletionSignal
	err     error
}

func (e *stubEmitter) Emit(_ context.Context, signal CompletionSignal) error {
	e.signals = append(e.signals, signal)
	return e.err
}

var syncerBudgets = []models.BudgetCategory{
	{Name: "Food & Dining", TransactionCategories: []string{"Food Delivery", "Groceries"}},
	{Name: "Getting Around", TransactionCategories: []string{"Transport"}},
}

func newTestCoordinator(txStore store.TransactionStore) *ingest.Coordinator {
	resolver := categorizer.NewResolver(nil, categorizer.NewKeywordCategorizer(nil), syncerBudgets, nil)
	return ingest.NewCoordinator(txStore, resolver, nil)
}

func testSnapshot() source.Snapshot {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return source.Snapshot{
		Records: []models.SourceRecord{
			{
				Date:        day,
				Amount:      decimal.RequireFromString("-420.50"),
				Type:        models.TypeExpense,
				Description: "UPI-SWIGGY ORDER 000123456789",
			},
			{
				Date:        day,
				Amount:      decimal.RequireFromString("85000.00"),
				Type:        models.TypeIncome,
				Description: "ACME CORP SALARY JUN",
			},
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestSyncFetchesAndPersists(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	emitter := &stubEmitter{}
	mock := store.NewMockTransactionStore()
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(mock), NewFetchCache(), emitter, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, report.Status)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 0, report.MatchedExisting)
	assert.Equal(t, 2, mock.Count("alice"))
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestSyncReusesCachedSnapshot(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	mock := store.NewMockTransactionStore()
	cache := NewFetchCache()
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(mock), cache, nil, []string{"alice"}, nil)

	_, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.calls)

	// Second pass persists from cache without fetching again.
	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, StatusCompleted, report.Status)
	assert.Equal(t, 2, report.MatchedExisting)
}

func TestSyncForceBypassesCache(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), NewFetchCache(), nil, []string{"alice"}, nil)

	_, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	_, err = orchestrator.Sync(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestSyncCacheRefillsEmptiedStore(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	mock := store.NewMockTransactionStore()
	cache := NewFetchCache()
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(mock), cache, nil, []string{"alice"}, nil)

	_, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 2, mock.Count("alice"))

	// Wipe the store; a cached pass must re-insert without refetching.
	fresh := store.NewMockTransactionStore()
	orchestrator = NewOrchestrator(fetcher, newTestCoordinator(fresh), cache, nil, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 2, fresh.Count("alice"))
}

func TestSyncFailedFetchKeepsCache(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	cache := NewFetchCache()
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), cache, nil, []string{"alice"}, nil)

	_, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)

	fetcher.err = &source.FetchError{Source: "csv", Err: assert.AnError}
	report, err := orchestrator.Sync(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, report.Status)

	cached, ok := cache.Get()
	require.True(t, ok)
	assert.Len(t, cached.Records, 2)
}

func TestSyncWithoutFetcherSkips(t *testing.T) {
	emitter := &stubEmitter{}
	orchestrator := NewOrchestrator(nil, newTestCoordinator(store.NewMockTransactionStore()), nil, emitter, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, report.Status)
	assert.Empty(t, emitter.signals)
}

func TestSyncEmitsCompletionSignal(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	emitter := &stubEmitter{}
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), NewFetchCache(), emitter, []string{"alice", "bob"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, emitter.signals, 1)
	assert.Equal(t, []string{"alice", "bob"}, emitter.signals[0].UserIDs)
	assert.Equal(t, report.Inserted+report.MatchedExisting, emitter.signals[0].TransactionCount)
}

func TestSyncEmptySnapshotEmitsNothing(t *testing.T) {
	fetcher := &stubFetcher{snapshot: source.Snapshot{FetchedAt: time.Now().UTC()}}
	emitter := &stubEmitter{}
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), NewFetchCache(), emitter, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, report.Status)
	assert.Empty(t, emitter.signals)
}

func TestSyncDemoSnapshotEmitsNothing(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.IsDemo = true
	fetcher := &stubFetcher{snapshot: snapshot}
	emitter := &stubEmitter{}
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), NewFetchCache(), emitter, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Empty(t, emitter.signals)
}

func TestSyncLostSignalDoesNotFailRun(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	emitter := &stubEmitter{err: assert.AnError}
	orchestrator := NewOrchestrator(fetcher, newTestCoordinator(store.NewMockTransactionStore()), NewFetchCache(), emitter, []string{"alice"}, nil)

	report, err := orchestrator.Sync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, report.Status)
}

func TestFetchCache(t *testing.T) {
	cache := NewFetchCache()

	_, ok := cache.Get()
	assert.False(t, ok)

	cache.Set(testSnapshot())
	snapshot, ok := cache.Get()
	require.True(t, ok)
	assert.Len(t, snapshot.Records, 2)

	cache.Clear()
	_, ok = cache.Get()
	assert.False(t, ok)
}
