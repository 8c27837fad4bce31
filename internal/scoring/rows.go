// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"sort"

	"github.com/pdiddy/biomarker-engine/internal/normalize"
	"github.com/pdiddy/biomarker-engine/internal/reference"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// RowSourceKind tags the shape of a row input.
type RowSourceKind int

const (
	// RowList is an ordered list of fully formed rows.
	RowList RowSourceKind = iota

	// KeyedRecord maps biomarker names to rows; a row with an empty
	// name inherits its key.
	KeyedRecord

	// FlatScalarMap maps biomarker names to bare numeric values.
	FlatScalarMap
)

// RowSource is a tagged input variant for the scorer. Callers resolve
// whatever shape they hold into one of the three variants once at the
// boundary; Rows performs the single explicit conversion per variant.
type RowSource struct {
	Kind  RowSourceKind
	List  []types.BiomarkerRow
	Keyed map[string]types.BiomarkerRow
	Flat  map[string]float64
}

// ListSource wraps an ordered row list.
func ListSource(rows []types.BiomarkerRow) RowSource {
	return RowSource{Kind: RowList, List: rows}
}

// KeyedSource wraps a name-to-row mapping.
func KeyedSource(rows map[string]types.BiomarkerRow) RowSource {
	return RowSource{Kind: KeyedRecord, Keyed: rows}
}

// FlatSource wraps a name-to-value mapping.
func FlatSource(values map[string]float64) RowSource {
	return RowSource{Kind: FlatScalarMap, Flat: values}
}

// Rows converts the source to a flat row list. Map variants are emitted
// in sorted key order so scoring output is deterministic.
func (s RowSource) Rows() []types.BiomarkerRow {
	switch s.Kind {
	case KeyedRecord:
		keys := make([]string, 0, len(s.Keyed))
		for k := range s.Keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([]types.BiomarkerRow, 0, len(keys))
		for _, k := range keys {
			row := s.Keyed[k]
			if row.Name == "" {
				row.Name = k
			}
			rows = append(rows, row)
		}
		return rows

	case FlatScalarMap:
		keys := make([]string, 0, len(s.Flat))
		for k := range s.Flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([]types.BiomarkerRow, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, types.BiomarkerRow{Name: k, Value: s.Flat[k]})
		}
		return rows

	default:
		return s.List
	}
}

// RowsFromRecords pairs extracted records with reference entries to
// build scorable rows. Numeric records matching a dataset entry get a
// computed qualitative level; records without a numeric value or a
// matching entry stay unleveled and unbounded, which scores neutral.
// Record order is preserved.
func RowsFromRecords(records []types.BiomarkerRecord, ds *types.ReferenceDataset, sex types.Sex) []types.BiomarkerRow {
	rows := make([]types.BiomarkerRow, 0, len(records))
	for _, rec := range records {
		row := types.BiomarkerRow{
			Name:     rec.Biomarker,
			Units:    rec.Units,
			Category: rec.Category,
		}

		value, numeric := rec.Value.Float()
		if numeric {
			row.Value = value
			if ds != nil {
				if entry, ok := ds.Lookup(normalize.Slug(rec.Biomarker)); ok {
					if level, matched := reference.ComputeLevel(entry, value, sex); matched {
						row.Level = level
					}
					if row.Category == "" {
						row.Category = entry.Category
					}
				}
			}
		}

		rows = append(rows, row)
	}
	return rows
}
