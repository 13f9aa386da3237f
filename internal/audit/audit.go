// Package audit validates the stored transaction set against the
// categorization policy: every persisted non-override, non-income,
// non-financial category must be its own budget name or be absent from the
// budget reverse map. A stale raw category that should have been remapped is
// a finding.
package audit

import (
	"fmt"
	"strings"

	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/models"
	"omfin/ledger-sync/internal/store"
)

// Finding is one transaction whose persisted category violates the
// consistency property.
type Finding struct {
	TransactionID string
	Date          string
	Category      string
	ShouldBe      string
	Description   string
}

// Report summarizes one user's audit pass.
type Report struct {
	UserID        string
	Total         int
	Overrides     int
	Uncategorized int
	Stale         []Finding
	ByCategory    map[string]int
}

// Clean reports whether the audit found no violations.
func (r Report) Clean() bool {
	return len(r.Stale) == 0
}

// Auditor walks a user's stored transactions and checks category
// consistency against the budget configuration.
type Auditor struct {
	store      store.TransactionStore
	reverseMap map[string]string
	log        logging.Logger
}

// NewAuditor creates an Auditor over the given store and budget
// configuration.
func NewAuditor(txStore store.TransactionStore, budgets []models.BudgetCategory, logger logging.Logger) *Auditor {
	if logger == nil {
		logger = logging.NewNop()
	}

	reverse := make(map[string]string)
	for _, budget := range budgets {
		for _, raw := range budget.TransactionCategories {
			reverse[strings.ToLower(raw)] = budget.Name
		}
	}

	return &Auditor{store: txStore, reverseMap: reverse, log: logger}
}

// AuditUser audits every stored transaction for the user.
func (a *Auditor) AuditUser(userID string) (Report, error) {
	transactions, err := a.store.ListByUser(userID)
	if err != nil {
		return Report{}, fmt.Errorf("loading transactions for audit: %w", err)
	}

	report := Report{
		UserID:     userID,
		Total:      len(transactions),
		ByCategory: make(map[string]int),
	}

	for _, tx := range transactions {
		report.ByCategory[tx.Category]++

		if tx.CategoryOverride {
			report.Overrides++
			continue
		}
		if tx.Category == models.CategoryUncategorized {
			report.Uncategorized++
			continue
		}
		if models.IsIncomeCategory(tx.Category) || models.IsFinancialCategory(tx.Category) {
			continue
		}

		mapped, inReverseMap := a.reverseMap[strings.ToLower(tx.Category)]
		if inReverseMap && !strings.EqualFold(mapped, tx.Category) {
			report.Stale = append(report.Stale, Finding{
				TransactionID: tx.ID,
				Date:          tx.Date.Format("2006-01-02"),
				Category:      tx.Category,
				ShouldBe:      mapped,
				Description:   tx.Description,
			})
		}
	}

	a.log.WithFields(
		logging.F("user", userID),
		logging.F("total", report.Total),
		logging.F("stale", len(report.Stale)),
		logging.F("overrides", report.Overrides),
	).Info("Audit pass complete")

	return report, nil
}
