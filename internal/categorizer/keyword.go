package categorizer

import (
	"strings"

	"omfin/ledger-sync/internal/models"
)

// KeywordRuleMatcher applies user-defined rules by case-insensitive
// substring match against the raw description. First matching rule wins, in
// configuration order.
type KeywordRuleMatcher struct {
	rules []models.CategoryRule
}

// NewKeywordRuleMatcher creates a RuleMatcher over the given rules.
func NewKeywordRuleMatcher(rules []models.CategoryRule) *KeywordRuleMatcher {
	return &KeywordRuleMatcher{rules: rules}
}

// Match returns the first rule category whose keyword appears in the record
// description.
func (m *KeywordRuleMatcher) Match(rec models.SourceRecord) (string, bool) {
	description := strings.ToUpper(rec.Description)
	for _, rule := range m.rules {
		if rule.Keyword == "" {
			continue
		}
		if strings.Contains(description, strings.ToUpper(rule.Keyword)) {
			return rule.Category, true
		}
	}
	return "", false
}

// KeywordCategorizer is the shipped default categorizer: keyword pattern
// matching over category configuration, plus a built-in pattern table for
// descriptors every Indian bank export contains.
type KeywordCategorizer struct {
	categories []models.CategoryConfig
}

// NewKeywordCategorizer creates a DefaultCategorizer over the given
// category configuration.
func NewKeywordCategorizer(categories []models.CategoryConfig) *KeywordCategorizer {
	return &KeywordCategorizer{categories: categories}
}

// builtinPatterns map common merchant keywords to raw categories. Checked
// after the configured categories, most specific first.
var builtinPatterns = []models.CategoryRule{
	// Food delivery and dining
	{Keyword: "SWIGGY", Category: "Food Delivery"},
	{Keyword: "ZOMATO", Category: "Food Delivery"},
	{Keyword: "RESTAURANT", Category: "Dining Out"},
	{Keyword: "CAFE", Category: "Dining Out"},
	{Keyword: "BARBEQUE", Category: "Dining Out"},

	// Groceries
	{Keyword: "BIGBASKET", Category: "Groceries"},
	{Keyword: "BLINKIT", Category: "Groceries"},
	{Keyword: "ZEPTO", Category: "Groceries"},
	{Keyword: "DMART", Category: "Groceries"},
	{Keyword: "RELIANCE FRESH", Category: "Groceries"},
	{Keyword: "GROFERS", Category: "Groceries"},

	// Transport
	{Keyword: "UBER", Category: "Transport"},
	{Keyword: "OLA", Category: "Transport"},
	{Keyword: "RAPIDO", Category: "Transport"},
	{Keyword: "IRCTC", Category: "Travel"},
	{Keyword: "REDBUS", Category: "Travel"},
	{Keyword: "MAKEMYTRIP", Category: "Travel"},
	{Keyword: "INDIGO", Category: "Travel"},
	{Keyword: "PETROL", Category: "Fuel"},
	{Keyword: "FUEL", Category: "Fuel"},
	{Keyword: "HPCL", Category: "Fuel"},
	{Keyword: "IOCL", Category: "Fuel"},

	// Shopping
	{Keyword: "AMAZON", Category: "Shopping"},
	{Keyword: "FLIPKART", Category: "Shopping"},
	{Keyword: "MYNTRA", Category: "Shopping"},
	{Keyword: "AJIO", Category: "Shopping"},

	// Subscriptions and utilities
	{Keyword: "NETFLIX", Category: "Entertainment"},
	{Keyword: "SPOTIFY", Category: "Entertainment"},
	{Keyword: "HOTSTAR", Category: "Entertainment"},
	{Keyword: "BOOKMYSHOW", Category: "Entertainment"},
	{Keyword: "AIRTEL", Category: "Utilities"},
	{Keyword: "JIO", Category: "Utilities"},
	{Keyword: "VODAFONE", Category: "Utilities"},
	{Keyword: "ELECTRICITY", Category: "Utilities"},
	{Keyword: "BESCOM", Category: "Utilities"},
	{Keyword: "BROADBAND", Category: "Utilities"},

	// Health
	{Keyword: "PHARMACY", Category: "Health"},
	{Keyword: "APOLLO", Category: "Health"},
	{Keyword: "PHARMEASY", Category: "Health"},
	{Keyword: "HOSPITAL", Category: "Health"},
	{Keyword: "CULT.FIT", Category: "Health"},

	// Housing
	{Keyword: "RENT", Category: "Rent"},
	{Keyword: "NOBROKER", Category: "Rent"},
	{Keyword: "MAINTENANCE", Category: "Rent"},

	// Income
	{Keyword: "SALARY", Category: "Salary"},
	{Keyword: "INTEREST", Category: "Interest"},
	{Keyword: "REFUND", Category: "Refunds"},
	{Keyword: "CASHBACK", Category: "Refunds"},

	// Financial
	{Keyword: "EMI", Category: "Loan Payment"},
	{Keyword: "LOAN", Category: "Loan Payment"},
	{Keyword: "LIC", Category: "Insurance"},
	{Keyword: "INSURANCE", Category: "Insurance"},
	{Keyword: "MUTUAL FUND", Category: "Investments"},
	{Keyword: "SIP", Category: "Investments"},
	{Keyword: "RD INSTALLMENT", Category: "Savings"},
	{Keyword: "FD BOOKING", Category: "Savings"},
	{Keyword: "INCOME TAX", Category: "Tax"},
	{Keyword: "ADVANCE TAX", Category: "Tax"},
}

// Categorize returns the raw category for the record. Records nothing
// matches come back as Uncategorized; budget resolution is the resolver's
// concern, not this one's.
func (c *KeywordCategorizer) Categorize(rec models.SourceRecord) string {
	description := strings.ToUpper(rec.Description)

	for _, categoryConfig := range c.categories {
		for _, keyword := range categoryConfig.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(description, strings.ToUpper(keyword)) {
				return categoryConfig.Name
			}
		}
	}

	for _, pattern := range builtinPatterns {
		if strings.Contains(description, pattern.Keyword) {
			return pattern.Category
		}
	}

	return models.CategoryUncategorized
}
