package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaro(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical strings", "martha", "martha", 1},
		{"classic transposition", "martha", "marhta", 0.944444},
		{"partial overlap", "dwayne", "duane", 0.822222},
		{"both empty", "", "", 0},
		{"one empty", "swiggy", "", 0},
		{"no matches", "abc", "xyz", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Jaro(tc.a, tc.b), 0.0001)
		})
	}
}

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical strings", "swiggy", "swiggy", 1},
		{"shared prefix boost", "martha", "marhta", 0.961111},
		{"single prefix char", "dwayne", "duane", 0.840000},
		{"prefix capped at four", "zomato", "zomafo", 0.933333},
		{"empty string", "", "swiggy", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, JaroWinkler(tc.a, tc.b), 0.0001)
		})
	}
}

func TestJaroWinklerBounded(t *testing.T) {
	pairs := [][2]string{
		{"swiggy", "zomato"},
		{"groww invest", "groww"},
		{"a", "ab"},
		{"", ""},
		{"identical", "identical"},
		{"UPI-MERCHANT", "merchant"},
		{"zeptomarketplace", "zepto"},
	}

	for _, pair := range pairs {
		score := JaroWinkler(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0, "pair %v", pair)
		assert.LessOrEqual(t, score, 1.0, "pair %v", pair)
	}
}

func TestIsSameMerchant(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{
			name:     "same merchant behind order reference",
			a:        "Swiggy Bangalore",
			b:        "SWIGGY*ORDER123456",
			expected: true,
		},
		{
			name:     "containment after normalization",
			a:        "Uber India",
			b:        "Uber",
			expected: true,
		},
		{
			name:     "near-identical tokens over threshold",
			a:        "Zomato Limited",
			b:        "Zomafo",
			expected: true,
		},
		{
			name:     "merchant embedded in compound descriptor",
			a:        "BANGALORE SWIGY ORDER FOOD MART",
			b:        "Swiggy",
			expected: true,
		},
		{
			name:     "different merchants",
			a:        "Amazon",
			b:        "Flipkart",
			expected: false,
		},
		{
			name:     "too short to compare",
			a:        "AB",
			b:        "AB",
			expected: false,
		},
		{
			name:     "short against long",
			a:        "OK",
			b:        "OK Groceries Store",
			expected: false,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsSameMerchant(tc.a, tc.b))
		})
	}
}

func TestIsSameMerchantSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Swiggy Bangalore", "SWIGGY*ORDER123456"},
		{"BANGALORE SWIGY ORDER FOOD MART", "Swiggy"},
		{"Uber India", "Uber"},
		{"Amazon", "Flipkart"},
		{"Zomato Limited", "Zomafo"},
		{"UPI-Groww Invest Pvt Ltd Bangalore 000123456789", "Groww"},
		{"", "Swiggy"},
		{"AB", "ABCD"},
	}

	for _, pair := range pairs {
		assert.Equal(t,
			IsSameMerchant(pair[0], pair[1]),
			IsSameMerchant(pair[1], pair[0]),
			"asymmetric result for %q / %q", pair[0], pair[1])
	}
}
