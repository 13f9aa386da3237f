package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"indian day first", "02/06/2025", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"unambiguous day over twelve", "25/12/2024", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-06-02", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"dashed day first", "02-06-2025", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"abbreviated month", "2-Jan-2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  02/06/2025  ", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseDate(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.UTC())
		})
	}
}

func TestParseDateAmbiguousReadsDayFirst(t *testing.T) {
	// 03/04 is valid both ways; day-first wins.
	parsed, err := ParseDate("03/04/2025")
	require.NoError(t, err)
	assert.Equal(t, time.April, parsed.Month())
	assert.Equal(t, 3, parsed.Day())
}

func TestParseDateErrors(t *testing.T) {
	for _, value := range []string{"", "  ", "not-a-date", "32/13/2025"} {
		_, err := ParseDate(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2025, 6, 2, 15, 42, 7, 999, time.FixedZone("IST", 5*3600+1800))
	truncated := Day(ts)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), truncated)
}
