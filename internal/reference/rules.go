// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reference loads the versioned reference dataset and evaluates
// its per-level rule expressions against measured values.
package reference

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

var (
	// orWord matches the OR-words "o" (Spanish) and "or" at word
	// boundaries, case-insensitive.
	orWord = regexp.MustCompile(`(?i)\b(?:o|or)\b`)

	// rangeExpr matches "a - b" with dash or en-dash.
	rangeExpr = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s*[-–—]\s*(-?\d+(?:\.\d+)?)$`)

	// cmpExpr matches a comparator-prefixed number.
	cmpExpr = regexp.MustCompile(`^(<=|>=|=<|=>|≤|≥|<|>)\s*(-?\d+(?:\.\d+)?)$`)
)

// ComputeLevel determines the qualitative level for a value under an
// entry's rules, trying levels best to worst and returning the first
// match. When no level matched by priority, the worst level's rule is
// re-checked explicitly (catalogs sometimes express it as an
// out-of-range disjunction not otherwise reached). Returns false when
// no level can be determined; callers treat that as "no reference
// available", not an error.
func ComputeLevel(entry *types.ReferenceEntry, value float64, sex types.Sex) (types.Level, bool) {
	if entry == nil {
		return "", false
	}

	for _, level := range types.LevelOrder {
		rule, ok := entry.Levels[level]
		if !ok {
			continue
		}
		text := rule.ForSex(sex)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if RuleMatches(text, value) {
			return level, true
		}
	}

	if rule, ok := entry.Levels[types.LevelPoor]; ok {
		if RuleMatches(rule.ForSex(sex), value) {
			return types.LevelPoor, true
		}
	}

	return "", false
}

// RuleMatches evaluates one rule text against a value. The text is split
// into sub-rules on the OR separators ("o"/"or", "/", ";") and matches
// when any sub-rule matches.
func RuleMatches(text string, value float64) bool {
	for _, sub := range SplitOr(text) {
		if subRuleMatches(sub, value) {
			return true
		}
	}
	return false
}

// SplitOr splits rule text into its OR'd sub-rules.
func SplitOr(text string) []string {
	t := orWord.ReplaceAllString(text, ";")
	t = strings.ReplaceAll(t, "/", ";")

	var subs []string
	for _, part := range strings.Split(t, ";") {
		if p := strings.TrimSpace(part); p != "" {
			subs = append(subs, p)
		}
	}
	return subs
}

// subRuleMatches evaluates a single sub-rule, trying in order: a numeric
// range, a comparator expression, then a bare number (exact equality).
// Any other shape matches nothing. Decimal commas are normalized first.
func subRuleMatches(sub string, value float64) bool {
	s := strings.TrimSpace(strings.ReplaceAll(sub, ",", "."))

	if m := rangeExpr.FindStringSubmatch(s); m != nil {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA != nil || errB != nil {
			return false
		}
		lo, hi := math.Min(a, b), math.Max(a, b)
		return value >= lo && value <= hi
	}

	if m := cmpExpr.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return false
		}
		switch m[1] {
		case "<":
			return value < n
		case ">":
			return value > n
		case "<=", "=<", "≤":
			return value <= n
		case ">=", "=>", "≥":
			return value >= n
		}
		return false
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return value == n
	}
	return false
}
