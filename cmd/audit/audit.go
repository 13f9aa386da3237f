// Package audit contains the command that checks stored categories against
// the budget configuration.
package audit

import (
	"fmt"

	"omfin/ledger-sync/cmd/root"
	"omfin/ledger-sync/internal/logging"

	"github.com/spf13/cobra"
)

var (
	user string

	// Cmd is the audit command.
	Cmd = &cobra.Command{
		Use:   "audit",
		Short: "Audit stored categories for stale raw-category mappings.",
		Long: `Walks a user's stored transactions and reports every persisted category
that should have been remapped onto its owning budget, along with override
and uncategorized counts.`,
		RunE: runAudit,
	}
)

func init() {
	Cmd.Flags().StringVarP(&user, "user", "u", "", "User to audit instead of the configured default")
}

func runAudit(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer()
	if err != nil {
		return err
	}

	userID := user
	if userID == "" {
		userID = c.Config.Sync.DefaultUser
	}

	report, err := c.Auditor.AuditUser(userID)
	if err != nil {
		return err
	}

	fmt.Printf("Audited %d transactions for user %s\n", report.Total, report.UserID)
	fmt.Printf("  overrides:     %d\n", report.Overrides)
	fmt.Printf("  uncategorized: %d\n", report.Uncategorized)
	fmt.Printf("  stale:         %d\n", len(report.Stale))

	for _, finding := range report.Stale {
		fmt.Printf("  [%s] %s: category %q should be %q (%s)\n",
			finding.Date, finding.TransactionID, finding.Category, finding.ShouldBe, finding.Description)
	}

	if !report.Clean() {
		root.Log.WithFields(
			logging.F("user", report.UserID),
			logging.F("stale", len(report.Stale)),
		).Warn("Audit found stale categories")
		return fmt.Errorf("%d stale categories found", len(report.Stale))
	}
	return nil
}
