// Package root contains the root command for the application.
package root

import (
	"fmt"

	"omfin/ledger-sync/internal/config"
	"omfin/ledger-sync/internal/container"
	"omfin/ledger-sync/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	appConfig *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ledger-sync",
		Short: "Sync bank transactions into a categorized per-user ledger.",
		Long: `ledger-sync ingests transaction rows from a spreadsheet export into a
canonical per-user store, resolving merchant identity across noisy bank
descriptions and preserving manually reviewed categories across re-syncs.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-sync!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			appConfig = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	return appConfig
}

// NewContainer builds the pipeline from the loaded configuration.
func NewContainer() (*container.Container, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return container.New(appConfig, Log)
}
