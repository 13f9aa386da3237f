package models

import "strings"

// Transaction types
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Well-known categories
const (
	CategoryUncategorized = "Uncategorized"
	CategoryInvestments   = "Investments"
)

// IncomeCategories are categories that are valid as-is on income
// transactions and must never be remapped to a budget bucket.
var IncomeCategories = []string{
	"Salary",
	"Business Income",
	"Interest",
	"Refunds",
	"Other Income",
}

// FinancialCategories are money-movement categories that sit outside the
// spending budgets and must never be remapped.
var FinancialCategories = []string{
	"Savings",
	CategoryInvestments,
	"Loan Payment",
	"Insurance",
	"Tax",
}

// IsIncomeCategory reports whether name is one of the fixed income categories.
func IsIncomeCategory(name string) bool {
	return containsFold(IncomeCategories, name)
}

// IsFinancialCategory reports whether name is one of the fixed financial categories.
func IsFinancialCategory(name string) bool {
	return containsFold(FinancialCategories, name)
}

func containsFold(set []string, name string) bool {
	for _, s := range set {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
