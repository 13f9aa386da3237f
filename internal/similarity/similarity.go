// Package similarity decides whether two noisy bank descriptions denote the
// same real-world merchant, using Jaro-Winkler string similarity over
// normalized merchant tokens.
package similarity

import (
	"strings"

	"omfin/ledger-sync/internal/textutils"
)

const (
	// minComparableLen is the minimum normalized length worth comparing.
	// Anything shorter is too ambiguous to call a match.
	minComparableLen = 3

	// matchThreshold is the Jaro-Winkler score above which two merchant
	// tokens are treated as the same merchant.
	matchThreshold = 0.88
)

// Jaro returns the classic Jaro similarity of a and b in [0,1]. Identical
// strings score 1; an empty string or zero character matches score 0.
func Jaro(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 0
	}

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)
	matches := 0

	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[j] {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}

// JaroWinkler returns the Jaro score boosted by a shared-prefix bonus of
// prefixLen * 0.1 * (1 - jaro), with the prefix capped at 4 runes.
func JaroWinkler(a, b string) float64 {
	jaro := Jaro(a, b)

	ra, rb := []rune(a), []rune(b)
	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && prefix < 4 && ra[prefix] == rb[prefix] {
		prefix++
	}

	return jaro + float64(prefix)*0.1*(1-jaro)
}

// IsSameMerchant reports whether two raw bank descriptions denote the same
// real-world merchant. Symmetric in its arguments: the comparison orders the
// two tokens by length internally, never by argument position.
func IsSameMerchant(text1, text2 string) bool {
	return isSameMerchant(text1, text2, minComparableLen)
}

func isSameMerchant(text1, text2 string, minLength int) bool {
	clean1 := textutils.StripSpaces(textutils.NormalizeMerchant(text1))
	clean2 := textutils.StripSpaces(textutils.NormalizeMerchant(text2))

	if len([]rune(clean1)) < minLength || len([]rune(clean2)) < minLength {
		return false
	}

	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		return true
	}

	// Compare the raw texts as well: normalization can be over-aggressive
	// and strip the distinguishing part of a short descriptor.
	raw1 := textutils.StripSpaces(strings.ToLower(text1))
	raw2 := textutils.StripSpaces(strings.ToLower(text2))
	if len([]rune(raw1)) >= minLength && len([]rune(raw2)) >= minLength {
		if strings.Contains(raw1, raw2) || strings.Contains(raw2, raw1) {
			return true
		}
	}

	shorter, longer := clean1, clean2
	if len([]rune(shorter)) > len([]rune(longer)) {
		shorter, longer = longer, shorter
	}

	if len([]rune(shorter)) >= 4 && JaroWinkler(clean1, clean2) >= matchThreshold {
		return true
	}

	// A merchant name embedded inside a longer compound descriptor will not
	// score well whole-string; scan a shorter-length window across the
	// longer token instead.
	rs, rl := []rune(shorter), []rune(longer)
	if len(rl) > len(rs)+4 {
		for offset := 0; offset+len(rs) <= len(rl); offset++ {
			window := string(rl[offset : offset+len(rs)])
			if JaroWinkler(window, shorter) >= matchThreshold {
				return true
			}
		}
	}

	return false
}
