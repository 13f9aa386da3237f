// Package container wires the pipeline's dependencies from configuration.
package container

import (
	"fmt"
	"path/filepath"
	"time"

	"omfin/ledger-sync/internal/audit"
	"omfin/ledger-sync/internal/categorizer"
	"omfin/ledger-sync/internal/config"
	"omfin/ledger-sync/internal/ingest"
	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/models"
	"omfin/ledger-sync/internal/source"
	"omfin/ledger-sync/internal/store"
	"omfin/ledger-sync/internal/syncer"
)

// Container holds the constructed pipeline components.
type Container struct {
	Config       *config.Config
	Logger       logging.Logger
	Store        *store.FileStore
	Budgets      []models.BudgetCategory
	Resolver     *categorizer.Resolver
	Coordinator  *ingest.Coordinator
	Fetcher      source.Fetcher
	Emitter      syncer.SignalEmitter
	Cache        *syncer.FetchCache
	Orchestrator *syncer.Orchestrator
	Auditor      *audit.Auditor
}

// OrchestratorForUsers returns an orchestrator over the same pipeline
// components but a different user set.
func (c *Container) OrchestratorForUsers(users []string) *syncer.Orchestrator {
	return syncer.NewOrchestrator(c.Fetcher, c.Coordinator, c.Cache, c.Emitter, users, c.Logger)
}

// New builds the full pipeline from configuration.
func New(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	configStore := store.NewConfigStore(
		filepath.Join(cfg.Data.Directory, cfg.Data.BudgetsFile),
		filepath.Join(cfg.Data.Directory, cfg.Data.RulesFile),
		filepath.Join(cfg.Data.Directory, cfg.Data.CategoriesFile),
	)

	budgets, err := configStore.LoadBudgets()
	if err != nil {
		return nil, fmt.Errorf("loading budget configuration: %w", err)
	}
	rules, err := configStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("loading categorization rules: %w", err)
	}
	categories, err := configStore.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("loading category keywords: %w", err)
	}

	txStore := store.NewFileStore(cfg.Data.Directory, logger)

	resolver := categorizer.NewResolver(
		categorizer.NewKeywordRuleMatcher(rules),
		categorizer.NewKeywordCategorizer(categories),
		budgets,
		logger,
	)

	coordinator := ingest.NewCoordinator(txStore, resolver, logger)

	var fetcher source.Fetcher
	if cfg.Source.URL != "" || cfg.Source.File != "" {
		fetcher = source.NewCSVFetcher(
			cfg.Source.URL,
			cfg.Source.File,
			cfg.Source.Demo,
			time.Duration(cfg.Source.TimeoutSeconds)*time.Second,
			logger,
		)
	}

	var emitter syncer.SignalEmitter = syncer.NopEmitter{}
	if cfg.Signal.Enabled {
		emitter = syncer.NewHTTPEmitter(
			cfg.Signal.URL,
			time.Duration(cfg.Signal.TimeoutSeconds)*time.Second,
			logger,
		)
	}

	cache := syncer.NewFetchCache()
	orchestrator := syncer.NewOrchestrator(
		fetcher,
		coordinator,
		cache,
		emitter,
		[]string{cfg.Sync.DefaultUser},
		logger,
	)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Store:        txStore,
		Budgets:      budgets,
		Resolver:     resolver,
		Coordinator:  coordinator,
		Fetcher:      fetcher,
		Emitter:      emitter,
		Cache:        cache,
		Orchestrator: orchestrator,
		Auditor:      audit.NewAuditor(txStore, budgets, logger),
	}, nil
}
