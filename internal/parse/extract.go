// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse implements the free-text biomarker extraction engine. It
// scans normalized report lines for catalog aliases at token boundaries,
// then searches the text after each match for a plausible value and unit.
// Extraction is a total function: lines that yield nothing are a normal
// empty result, never an error.
package parse

import (
	"strings"
	"time"

	"github.com/pdiddy/biomarker-engine/internal/catalog"
	"github.com/pdiddy/biomarker-engine/internal/normalize"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// Extractor turns report lines into biomarker records using an alias
// index. It holds no mutable state; one Extractor is safe for concurrent
// use across documents.
type Extractor struct {
	index *catalog.Index
}

// New builds an Extractor over the given alias index.
func New(index *catalog.Index) *Extractor {
	return &Extractor{index: index}
}

// Records extracts one record per canonical biomarker from the report
// lines, in document order. The first occurrence of a biomarker wins;
// later occurrences are discarded even when they carry different values.
// The supplied date, when non-nil, is attached uniformly to all records
// from this run.
func (e *Extractor) Records(lines []string, date *time.Time) []types.BiomarkerRecord {
	var records []types.BiomarkerRecord
	seen := make(map[string]bool)

	for _, raw := range lines {
		line := normalize.Line(raw)
		if line == "" {
			continue
		}

		// Spans claimed by earlier (longer) aliases on this line. "saturacion
		// de transferrina" must not leave its tail for "transferrina".
		var claimed []span

		for _, pair := range e.index.Pairs() {
			if seen[pair.Canonical] {
				continue
			}
			pos := findAlias(line, pair.Alias, claimed)
			if pos < 0 {
				continue
			}
			claimed = append(claimed, span{pos, pos + len(pair.Alias)})
			if e.excluded(pair.Canonical, line) {
				continue
			}

			token, unit, ok := findValue(line[pos+len(pair.Alias):])
			if !ok {
				continue
			}

			entry, _ := e.index.Entry(pair.Canonical)
			records = append(records, types.BiomarkerRecord{
				Biomarker: pair.Canonical,
				Value:     parseValue(token),
				Units:     restoreUnitCase(raw, unit),
				Category:  entry.Category,
				Date:      date,
			})
			seen[pair.Canonical] = true
		}
	}

	return records
}

// excluded reports whether any of the biomarker's exclusion terms appears
// on the line at a token boundary.
func (e *Extractor) excluded(canonical, line string) bool {
	for _, term := range e.index.SkipTerms(canonical) {
		if findAlias(line, term, nil) >= 0 {
			return true
		}
	}
	return false
}

type span struct{ start, end int }

func (s span) overlaps(start, end int) bool {
	return start < s.end && s.start < end
}

// findAlias returns the byte offset of the first boundary-delimited
// occurrence of alias in the normalized line that does not overlap a
// claimed span, or -1. A boundary is the start/end of the line or a
// neighbor outside the word class, so "glucosa" matches "glucosa: 92"
// but never "glucosamina". The slash counts as a word character: unit
// compounds like "mg/dl" stay opaque to short aliases ("mg").
func findAlias(line, alias string, claimed []span) int {
	if alias == "" {
		return -1
	}
	from := 0
	for {
		i := strings.Index(line[from:], alias)
		if i < 0 {
			return -1
		}
		at := from + i
		end := at + len(alias)
		if (at == 0 || !isWordByte(line[at-1])) && (end == len(line) || !isWordByte(line[end])) {
			taken := false
			for _, s := range claimed {
				if s.overlaps(at, end) {
					taken = true
					break
				}
			}
			if !taken {
				return at
			}
		}
		from = at + 1
	}
}

// isWordByte reports whether b belongs to an alias word: a lowercase
// letter, a digit, or a slash. Normalized lines are lowercase, so this
// covers every alphanumeric byte they hold.
func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '/'
}

// restoreUnitCase recovers the unit token's original casing from the raw
// line ("mg/dL" rather than the normalized "mg/dl"). Falls back to the
// normalized token when the raw line does not contain it.
func restoreUnitCase(raw, unit string) string {
	if unit == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if i := strings.Index(lower, unit); i >= 0 && i+len(unit) <= len(raw) {
		return raw[i : i+len(unit)]
	}
	return unit
}
