package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRecordValidate(t *testing.T) {
	valid := SourceRecord{
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-420.50"),
		Type:        TypeExpense,
		Description: "UPI-SWIGGY ORDER",
	}

	tests := []struct {
		name    string
		mutate  func(*SourceRecord)
		missing []string
	}{
		{"valid record", func(*SourceRecord) {}, nil},
		{"missing date", func(r *SourceRecord) { r.Date = time.Time{} }, []string{"date"}},
		{"zero amount", func(r *SourceRecord) { r.Amount = decimal.Zero }, []string{"amount"}},
		{"unknown type", func(r *SourceRecord) { r.Type = "transfer" }, []string{"type"}},
		{"everything missing", func(r *SourceRecord) { *r = SourceRecord{Description: "BAD ROW"} }, []string{"date", "amount", "type"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid
			tc.mutate(&rec)

			err := rec.Validate()
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}

			var validationError *ValidationError
			require.ErrorAs(t, err, &validationError)
			assert.Equal(t, tc.missing, validationError.Missing)
		})
	}
}

func TestTransactionSameDay(t *testing.T) {
	tx := Transaction{Date: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)}

	assert.True(t, tx.SameDay(time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC)))
	assert.False(t, tx.SameDay(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, tx.SameDay(time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)))
}

func TestCategorySets(t *testing.T) {
	assert.True(t, IsIncomeCategory("Salary"))
	assert.True(t, IsIncomeCategory("salary"))
	assert.True(t, IsIncomeCategory("Other Income"))
	assert.False(t, IsIncomeCategory("Food & Dining"))

	assert.True(t, IsFinancialCategory("Investments"))
	assert.True(t, IsFinancialCategory("loan payment"))
	assert.False(t, IsFinancialCategory("Salary"))
	assert.False(t, IsFinancialCategory(""))
}
