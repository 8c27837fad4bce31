// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strconv"
	"strings"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// boundWords are qualifier words meaning "up to / from / at least". A
// number following one of them is a reference bound, not a reading.
var boundWords = map[string]bool{
	"hasta":    true,
	"desde":    true,
	"minimo":   true,
	"maximo":   true,
	"min":      true,
	"max":      true,
	"inferior": true,
	"superior": true,
	"limite":   true,
	"to":       true,
	"from":     true,
	"least":    true,
	"under":    true,
	"over":     true,
}

// comparators are relational prefixes. A comparator-prefixed number is
// always treated as a bound expression, never as the patient's value;
// reports printing "PCR < 0.5" as a result yield no value for that line.
var comparators = map[string]bool{
	"<":  true,
	">":  true,
	"<=": true,
	">=": true,
	"=<": true,
	"=>": true,
}

// findValue scans the normalized text following a matched alias for the
// first plausible value candidate, left to right. It returns the numeric
// token (decimal comma preserved), the normalized unit token if one was
// found, and whether a candidate was accepted.
func findValue(rest string) (token, unit string, ok bool) {
	toks := strings.Fields(rest)

	for i, tok := range toks {
		num, suffix, isNum := splitNumeric(tok)
		if !isNum {
			continue
		}

		// Exponent notation (cell counts like 4.5x10^3) is not a reading.
		if strings.Contains(suffix, "^") {
			continue
		}
		if suffix != "" && !unitSuffix(suffix) {
			continue
		}
		// A lone trailing separator is a table artifact, not a unit.
		if suffix == "/" || suffix == "-" || suffix == "·" {
			continue
		}
		// A dash on either side means the number belongs to a range.
		if i+1 < len(toks) && isDash(toks[i+1]) {
			continue
		}
		if i > 0 && isDash(toks[i-1]) {
			continue
		}
		if i+1 < len(toks) && rangeBoundStart(toks[i+1]) {
			continue
		}
		if i > 0 && (boundWords[toks[i-1]] || comparators[toks[i-1]]) {
			continue
		}

		u := suffix
		if u == "" {
			switch {
			case i+1 < len(toks) && unitToken(toks[i+1]):
				u = toks[i+1]
			case i > 0 && unitToken(toks[i-1]) && !isNumber(toks[i-1]):
				u = toks[i-1]
			}
		}
		return num, u, true
	}

	return "", "", false
}

// parseValue converts the captured token to a numeric Value, falling
// back to the raw text when it does not parse.
func parseValue(tok string) types.Value {
	f, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
	if err != nil {
		return types.TextValue(tok)
	}
	return types.NumberValue(f)
}

// splitNumeric splits a token into a leading signed decimal number
// (comma or dot separator) and its attached suffix.
func splitNumeric(tok string) (num, suffix string, ok bool) {
	i := 0
	if i < len(tok) && tok[i] == '-' {
		i++
	}
	start := i
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == start {
		return "", "", false
	}
	if i+1 < len(tok) && (tok[i] == '.' || tok[i] == ',') && isDigit(tok[i+1]) {
		i++
		for i < len(tok) && isDigit(tok[i]) {
			i++
		}
	}
	return tok[:i], tok[i:], true
}

// unitSuffix reports whether s is a plausible unit attached directly to
// a number: letters plus the separator symbols units use. Digits
// disqualify it (the token is a range or ratio, not value+unit).
func unitSuffix(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == 'µ', r == 'μ':
		case r == '/', r == '%', r == '·', r == '-':
		default:
			return false
		}
	}
	return true
}

// unitToken reports whether a standalone token can serve as a unit: it
// must contain a letter or one of / · % µ μ and be at least two
// characters, except for the bare percent sign.
func unitToken(tok string) bool {
	if tok == "%" {
		return true
	}
	if len(tok) < 2 {
		return false
	}
	if strings.ContainsAny(tok, "/·%µμ") {
		return true
	}
	for _, r := range tok {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

// rangeBoundStart reports whether tok looks like the start of a second
// range bound: digits immediately followed by "/", "^", or "x10".
func rangeBoundStart(tok string) bool {
	i := 0
	for i < len(tok) && (isDigit(tok[i]) || tok[i] == '.' || tok[i] == ',') {
		i++
	}
	if i == 0 {
		return false
	}
	rest := tok[i:]
	return strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "^") ||
		strings.HasPrefix(rest, "x10")
}

func isNumber(tok string) bool {
	_, suffix, ok := splitNumeric(tok)
	return ok && suffix == ""
}

func isDash(tok string) bool {
	return tok == "-"
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
