// Package sync contains the command that runs one sync pass.
package sync

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"omfin/ledger-sync/cmd/root"
	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/report"
	"omfin/ledger-sync/internal/syncer"

	"github.com/spf13/cobra"
)

var (
	force bool
	user  string

	// Cmd is the sync command.
	Cmd = &cobra.Command{
		Use:   "sync",
		Short: "Fetch source records and ingest them into the ledger.",
		Long: `Runs one sync pass: fetch the upstream spreadsheet export (or reuse the
cached snapshot), resolve each row against the stored ledger, and persist
new transactions without duplicating or re-categorizing existing ones.`,
		RunE: runSync,
	}
)

func init() {
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the fetch cache and fetch fresh records")
	Cmd.Flags().StringVarP(&user, "user", "u", "", "Sync a specific user instead of the configured default")
}

func runSync(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer()
	if err != nil {
		return err
	}

	orchestrator := c.Orchestrator
	if user != "" {
		orchestrator = c.OrchestratorForUsers([]string{user})
	}

	runReport, err := orchestrator.Sync(cmd.Context(), force)
	printReport(runReport)

	runLog := report.NewRunLog(filepath.Join(c.Config.Data.Directory, "runs.jsonl"), root.Log)
	if logErr := runLog.Append(runReport); logErr != nil {
		root.Log.WithError(logErr).Warn("Failed to append run report to run log")
	}

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if runReport.Status == syncer.StatusSkipped {
		root.Log.Warn("No source configured; set source.url or source.file")
	}
	return nil
}

func printReport(runReport syncer.RunReport) {
	data, err := json.MarshalIndent(runReport, "", "  ")
	if err != nil {
		root.Log.WithError(err).Error("Failed to encode run report")
		return
	}
	fmt.Println(string(data))

	root.Log.WithFields(
		logging.F("status", runReport.Status),
		logging.F("inserted", runReport.Inserted),
		logging.F("matched", runReport.MatchedExisting),
		logging.F("duration_ms", runReport.DurationMS),
	).Info("Sync run finished")
}
