// Package models defines the canonical transaction data model shared by the
// ingestion pipeline.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one stored financial event for one user.
//
// Description is the raw source text and is immutable once stored. Merchant
// is a normalized display token derived from it; it may be recomputed but is
// never used to break identity once assigned. Category and CategoryOverride
// are mutated only by the external edit path, never by re-ingestion.
type Transaction struct {
	ID               string          `yaml:"id"`
	UserID           string          `yaml:"user_id"`
	Date             time.Time       `yaml:"date"`
	Amount           decimal.Decimal `yaml:"amount"`
	Type             string          `yaml:"type"`
	Description      string          `yaml:"description"`
	Merchant         string          `yaml:"merchant"`
	Category         string          `yaml:"category"`
	CategoryOverride bool            `yaml:"category_override"`
	ExternalRef      string          `yaml:"external_ref,omitempty"`
	CreatedAt        time.Time       `yaml:"created_at"`
	UpdatedAt        time.Time       `yaml:"updated_at"`
}

// SameDay reports whether the transaction falls on the same calendar day as t.
func (tx Transaction) SameDay(t time.Time) bool {
	y1, m1, d1 := tx.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SourceRecord is one row fetched from the upstream source for a sync pass.
// It is transient and never persisted directly.
type SourceRecord struct {
	Date        time.Time
	Amount      decimal.Decimal
	Type        string
	Description string
	ExternalRef string
}

// Validate checks the record carries the fields ingestion depends on.
func (r SourceRecord) Validate() error {
	var missing []string
	if r.Date.IsZero() {
		missing = append(missing, "date")
	}
	if r.Amount.IsZero() {
		missing = append(missing, "amount")
	}
	if r.Type != TypeExpense && r.Type != TypeIncome {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return &ValidationError{Record: r.Description, Missing: missing}
	}
	return nil
}

// ValidationError marks a malformed source record. The record is skipped and
// reported in the batch result; it never aborts the batch.
type ValidationError struct {
	Record  string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid source record %q: missing %s", e.Record, strings.Join(e.Missing, ", "))
}

// BudgetCategory is a user-facing spending bucket together with the raw
// categorizer outputs that map onto it. Read-only input owned by the budget
// configuration.
type BudgetCategory struct {
	Name                  string   `yaml:"name"`
	TransactionCategories []string `yaml:"transaction_categories"`
}
