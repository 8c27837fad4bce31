// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"sort"

	"github.com/pdiddy/biomarker-engine/internal/normalize"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// AliasPair maps one normalized alias to its canonical biomarker name.
type AliasPair struct {
	Alias     string
	Canonical string
}

// Index is the immutable alias lookup table built once from the catalog.
// Pairs are ordered by descending alias length so a longest-match-first
// scan needs no backtracking: "saturacion de transferrina" is tried
// before "transferrina" can shadow it.
type Index struct {
	pairs   []AliasPair
	entries map[string]types.CatalogEntry
	skip    map[string][]string
}

// NewIndex normalizes every alias and canonical name and builds the
// ordered pair list. Two entries normalizing to the same alias is a
// configuration error reported as ErrInvalidConfig.
func NewIndex(entries []types.CatalogEntry) (*Index, error) {
	ix := &Index{
		entries: make(map[string]types.CatalogEntry, len(entries)),
		skip:    make(map[string][]string),
	}

	owner := make(map[string]string)
	for _, entry := range entries {
		if _, dup := ix.entries[entry.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate catalog entry %q", types.ErrInvalidConfig, entry.Name)
		}
		ix.entries[entry.Name] = entry

		for _, term := range entry.SkipIf {
			if t := normalize.Line(term); t != "" {
				ix.skip[entry.Name] = append(ix.skip[entry.Name], t)
			}
		}

		for _, alias := range append([]string{entry.Name}, entry.Aliases...) {
			a := normalize.Line(alias)
			if a == "" {
				continue
			}
			if prev, ok := owner[a]; ok {
				if prev == entry.Name {
					continue
				}
				return nil, fmt.Errorf("%w: alias %q maps to both %q and %q",
					types.ErrInvalidConfig, a, prev, entry.Name)
			}
			owner[a] = entry.Name
			ix.pairs = append(ix.pairs, AliasPair{Alias: a, Canonical: entry.Name})
		}
	}

	sort.SliceStable(ix.pairs, func(i, j int) bool {
		if len(ix.pairs[i].Alias) != len(ix.pairs[j].Alias) {
			return len(ix.pairs[i].Alias) > len(ix.pairs[j].Alias)
		}
		return ix.pairs[i].Alias < ix.pairs[j].Alias
	})

	return ix, nil
}

// Pairs returns the alias pairs, longest alias first.
func (ix *Index) Pairs() []AliasPair {
	return ix.pairs
}

// Entry returns the catalog entry for a canonical name.
func (ix *Index) Entry(canonical string) (types.CatalogEntry, bool) {
	e, ok := ix.entries[canonical]
	return e, ok
}

// SkipTerms returns the normalized exclusion terms for a canonical name.
// A line containing any of them at a token boundary must not produce a
// match for that biomarker.
func (ix *Index) SkipTerms(canonical string) []string {
	return ix.skip[canonical]
}

// Len returns the number of alias pairs.
func (ix *Index) Len() int {
	return len(ix.pairs)
}
