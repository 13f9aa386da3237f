// Package categorizer assigns semantic categories to incoming transactions.
//
// Resolution is an ordered chain: investment-platform keywords, then
// user-defined rules, then the default keyword categorizer, and finally the
// raw category is resolved against the fixed category sets and the budget
// reverse map. The resolver is never applied to transactions whose category
// was manually overridden.
package categorizer

import (
	"strings"

	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/models"
)

// investmentKeywords identify Groww brokerage activity in raw descriptions.
// A hit short-circuits every other rule: these settle through clearing
// members whose descriptors defeat keyword rules tuned for spending.
var investmentKeywords = []string{
	"groww",
	"groww.iccl",
	"indian clearing corp",
	"nextbillion",
}

// RuleMatcher applies user-defined categorization rules.
type RuleMatcher interface {
	// Match returns the rule category for the record, if any rule applies.
	Match(rec models.SourceRecord) (string, bool)
}

// DefaultCategorizer is the fallback categorizer producing a raw category
// string for records no rule claimed.
type DefaultCategorizer interface {
	Categorize(rec models.SourceRecord) string
}

// Resolution is the outcome of resolving one record's category.
type Resolution struct {
	Category string
	// Ambiguous is set when the raw category was absent from the fixed
	// sets and the reverse map, and "Uncategorized" was assigned. Flagged
	// for audit, never dropped silently.
	Ambiguous bool
	// RawCategory is the categorizer output before budget resolution.
	RawCategory string
}

// Resolver assigns or preserves a transaction's category under the fixed
// policy. Stateless once constructed; safe for concurrent use.
type Resolver struct {
	rules       RuleMatcher
	fallback    DefaultCategorizer
	reverseMap  map[string]string
	budgetNames map[string]string
	log         logging.Logger
}

// NewResolver builds a Resolver over the given budget configuration. The
// reverse map (raw category -> owning budget name) is derived once from
// BudgetCategory.TransactionCategories.
func NewResolver(rules RuleMatcher, fallback DefaultCategorizer, budgets []models.BudgetCategory, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}

	reverse := make(map[string]string)
	names := make(map[string]string, len(budgets))
	for _, budget := range budgets {
		names[strings.ToLower(budget.Name)] = budget.Name
		for _, raw := range budget.TransactionCategories {
			reverse[strings.ToLower(raw)] = budget.Name
		}
	}

	return &Resolver{
		rules:       rules,
		fallback:    fallback,
		reverseMap:  reverse,
		budgetNames: names,
		log:         logger,
	}
}

// Resolve assigns a category to a new record.
func (r *Resolver) Resolve(rec models.SourceRecord) Resolution {
	if IsInvestmentTransaction(rec.Description) {
		return Resolution{Category: models.CategoryInvestments, RawCategory: models.CategoryInvestments}
	}

	if r.rules != nil {
		if category, found := r.rules.Match(rec); found {
			return r.resolveRaw(rec, category)
		}
	}

	raw := models.CategoryUncategorized
	if r.fallback != nil {
		raw = r.fallback.Categorize(rec)
	}

	return r.resolveRaw(rec, raw)
}

// resolveRaw maps a raw categorizer output onto the stored category space:
// budget names and the fixed income/financial sets pass through unchanged,
// anything else goes through the reverse map.
func (r *Resolver) resolveRaw(rec models.SourceRecord, raw string) Resolution {
	if raw == "" {
		raw = models.CategoryUncategorized
	}

	if name, ok := r.budgetNames[strings.ToLower(raw)]; ok {
		return Resolution{Category: name, RawCategory: raw}
	}
	if models.IsIncomeCategory(raw) || models.IsFinancialCategory(raw) {
		return Resolution{Category: raw, RawCategory: raw}
	}
	if name, ok := r.reverseMap[strings.ToLower(raw)]; ok {
		return Resolution{Category: name, RawCategory: raw}
	}
	if strings.EqualFold(raw, models.CategoryUncategorized) {
		return Resolution{Category: models.CategoryUncategorized, RawCategory: raw}
	}

	r.log.WithFields(
		logging.F("raw_category", raw),
		logging.F("description", rec.Description),
	).Warn("Raw category has no budget mapping, marking uncategorized")

	return Resolution{Category: models.CategoryUncategorized, RawCategory: raw, Ambiguous: true}
}

// IsInvestmentTransaction reports whether the raw description matches the
// fixed investment-platform keyword set.
func IsInvestmentTransaction(description string) bool {
	lower := strings.ToLower(description)
	for _, keyword := range investmentKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
