// Package textutils canonicalizes raw bank descriptions into comparable
// merchant tokens.
package textutils

import (
	"regexp"
	"strings"
)

// railPrefixes are bank-rail markers that lead a description. Priority
// ordered: the first matching prefix is stripped, and only one.
var railPrefixes = []string{
	"UPI",
	"NEFT",
	"IMPS",
	"RTGS",
	"NACH",
	"ACH",
	"ECS",
	"POS",
	"ATM",
	"ATW",
	"BILLPAY",
	"BIL",
	"AUTODEBIT",
	"AUTOPAY",
	"INB",
	"MB",
	"IB",
	"TPT",
}

// cityTokens are Indian city names and abbreviations that banks append to
// merchant descriptors. Stripped only when they are the last word.
var cityTokens = map[string]bool{
	"BANGALORE": true, "BENGALURU": true, "BLR": true,
	"MUMBAI": true, "MUM": true, "BOM": true,
	"DELHI": true, "DEL": true, "NEWDELHI": true,
	"CHENNAI": true, "MAA": true,
	"KOLKATA": true, "CCU": true,
	"HYDERABAD": true, "HYD": true,
	"PUNE": true, "PNQ": true,
	"GURGAON": true, "GURUGRAM": true,
	"NOIDA": true, "AHMEDABAD": true, "JAIPUR": true, "KOCHI": true,
}

var (
	trailingRefPattern   = regexp.MustCompile(`[\s\-/]*\d{6,}$`)
	trailingEmailPattern = regexp.MustCompile(`[\-/\s]*[\w.]+@[\w.]+$`)
	legalSuffixPattern   = regexp.MustCompile(`(?i)\b(PVT|LTD|PRIVATE|LIMITED|INDIA|TECHNOLOGIES|TECH|DIGITAL|PAYMENTS?|SOLUTIONS?|SERVICES?|ENTERPRISES?)\b`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// NormalizeMerchant canonicalizes a raw bank description into a comparable
// merchant token. Deterministic and total: any input yields a (possibly
// empty) result, never an error.
func NormalizeMerchant(raw string) string {
	s := strings.TrimSpace(raw)

	s = stripRailPrefix(s)
	s = trailingRefPattern.ReplaceAllString(s, "")
	s = trailingEmailPattern.ReplaceAllString(s, "")
	s = legalSuffixPattern.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	s = stripTrailingCity(s)

	return strings.ToLower(strings.TrimSpace(s))
}

// stripRailPrefix removes one leading bank-rail marker plus its separator
// run. Matching is case-insensitive; the first prefix in priority order wins.
func stripRailPrefix(s string) string {
	upper := strings.ToUpper(s)
	for _, prefix := range railPrefixes {
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		rest := s[len(prefix):]
		// The marker must be delimited, otherwise "POSH CAFE" would lose
		// its first three letters.
		trimmed := strings.TrimLeft(rest, "-/*: .")
		if rest == "" || len(trimmed) != len(rest) {
			return trimmed
		}
	}
	return s
}

func stripTrailingCity(s string) string {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return s
	}
	last := strings.ToUpper(strings.Trim(s[idx+1:], ",.-"))
	if cityTokens[last] {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

// StripSpaces removes all whitespace from s. Used on both raw text and
// normalizer output when comparing merchants.
func StripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
