// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring converts biomarker rows into continuous in-range
// scores and aggregates them per category and overall. All functions are
// pure; a nil or empty input degrades to the neutral score 1, never an
// error.
package scoring

import (
	"math"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// LevelScores maps qualitative levels to their fixed scores.
var LevelScores = map[types.Level]float64{
	types.LevelExcellent: 1.0,
	types.LevelGood:      0.85,
	types.LevelFair:      0.6,
	types.LevelPoor:      0.2,
}

// relativeWidth is the fraction of the value's magnitude used as the
// normalization width when the row has only one finite bound.
const relativeWidth = 0.2

// minWidth keeps the fallback width from collapsing to zero for values
// at or near zero.
const minWidth = 1e-9

// RowScore returns the in-range score for one row in [0,1]. A row with a
// precomputed qualitative level maps through the fixed level table,
// bypassing the numeric distance entirely. Without bounds the row scores
// the neutral 1. Outside the bounds the score decreases linearly with
// the distance past the violated bound, normalized by the range width
// (or 20% of the value's magnitude when no width exists), clamped at 0.
func RowScore(row types.BiomarkerRow) float64 {
	if row.Level != "" {
		if s, ok := LevelScores[row.Level]; ok {
			return s
		}
	}

	if row.RefLow == nil && row.RefHigh == nil {
		return 1
	}

	lo, hi := math.Inf(-1), math.Inf(1)
	if row.RefLow != nil {
		lo = *row.RefLow
	}
	if row.RefHigh != nil {
		hi = *row.RefHigh
	}

	if row.Value >= lo && row.Value <= hi {
		return 1
	}

	var width float64
	if row.RefLow != nil && row.RefHigh != nil {
		width = hi - lo
	} else {
		width = math.Max(minWidth, math.Abs(row.Value)*relativeWidth)
	}

	var dist float64
	if row.Value < lo {
		dist = lo - row.Value
	} else {
		dist = row.Value - hi
	}

	return math.Max(0, 1-dist/width)
}

// ComputeScores partitions rows into the five fixed categories
// (unrecognized or missing categories fold into general), averages row
// scores within each, and averages across all rows for the overall
// score. Category output order is fixed for deterministic rendering. An
// empty category, and an empty row list, score 1.
func ComputeScores(rows []types.BiomarkerRow) types.ScoreReport {
	perCategory := make(map[types.Category][]float64, len(types.CategoryOrder))
	all := make([]float64, 0, len(rows))

	for _, row := range rows {
		category := row.Category
		if !types.KnownCategory(category) {
			category = types.CategoryGeneral
		}
		s := RowScore(row)
		perCategory[category] = append(perCategory[category], s)
		all = append(all, s)
	}

	report := types.ScoreReport{Overall: mean(all)}
	for _, category := range types.CategoryOrder {
		report.Categories = append(report.Categories, types.CategoryScore{
			Category: category,
			Score:    mean(perCategory[category]),
		})
	}
	return report
}

// mean averages scores; an empty slice yields the neutral 1.
func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 1
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
