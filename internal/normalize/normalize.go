// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize prepares lab-report text for alias matching and value
// extraction: lowercasing, diacritic stripping, character-set restriction,
// and whitespace collapsing. All functions are total and deterministic.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes characters and removes combining marks, so
// "Saturación" folds to "saturacion" while base letters survive.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// glyphAliases rewrites characters that carry meaning for the extractor
// into their ASCII equivalents before the character-set filter runs.
var glyphAliases = strings.NewReplacer(
	"≤", "<=",
	"≥", ">=",
	"–", "-",
	"—", "-",
)

// allowed reports whether r survives normalization. The set covers
// lowercase letters, digits, the symbols used in units and ranges, and
// the comparator glyphs the extractor's bound heuristics inspect.
func allowed(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '/', '%', '.', ',', '-', 'µ', 'μ', '^', '·', '<', '>', '=':
		return true
	}
	return false
}

// Line normalizes one line of report text: lowercase, diacritics
// stripped, disallowed characters replaced by spaces, whitespace
// collapsed and trimmed. Idempotent: Line(Line(s)) == Line(s).
func Line(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	s = glyphAliases.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slug converts a canonical biomarker name into a stable identifier used
// as the reference dataset key (e.g. "Colesterol Total" ->
// "colesterol-total").
func Slug(s string) string {
	s = Line(s)
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
