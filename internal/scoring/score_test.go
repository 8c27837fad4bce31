// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"math"
	"testing"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

func ptr(f float64) *float64 { return &f }

func TestRowScoreNumericDistance(t *testing.T) {
	tests := []struct {
		name string
		row  types.BiomarkerRow
		want float64
	}{
		{"inside range", types.BiomarkerRow{Value: 85, RefLow: ptr(70), RefHigh: ptr(99)}, 1},
		{"at low bound", types.BiomarkerRow{Value: 70, RefLow: ptr(70), RefHigh: ptr(99)}, 1},
		{"at high bound", types.BiomarkerRow{Value: 99, RefLow: ptr(70), RefHigh: ptr(99)}, 1},
		{"no bounds neutral", types.BiomarkerRow{Value: 12345}, 1},
		{"one full width past high", types.BiomarkerRow{Value: 128, RefLow: ptr(70), RefHigh: ptr(99)}, 0},
		{"half width past high", types.BiomarkerRow{Value: 113.5, RefLow: ptr(70), RefHigh: ptr(99)}, 0.5},
		{"half width under low", types.BiomarkerRow{Value: 55.5, RefLow: ptr(70), RefHigh: ptr(99)}, 0.5},
		{"two widths clamps at zero", types.BiomarkerRow{Value: 157, RefLow: ptr(70), RefHigh: ptr(99)}, 0},
		{"only high bound relative width", types.BiomarkerRow{Value: 110, RefHigh: ptr(100)}, 1 - 10/(110*0.2)},
		{"only low bound relative width", types.BiomarkerRow{Value: 90, RefLow: ptr(100)}, 1 - 10/(90*0.2)},
		{"zero value under low bound", types.BiomarkerRow{Value: 0, RefLow: ptr(1)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RowScore(tt.row)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RowScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowScoreLevelBypassesDistance(t *testing.T) {
	tests := []struct {
		level types.Level
		want  float64
	}{
		{types.LevelExcellent, 1.0},
		{types.LevelGood, 0.85},
		{types.LevelFair, 0.6},
		{types.LevelPoor, 0.2},
	}
	for _, tt := range tests {
		// Bounds that would score 0 numerically; the level must win.
		row := types.BiomarkerRow{Value: 500, RefLow: ptr(70), RefHigh: ptr(99), Level: tt.level}
		if got := RowScore(row); got != tt.want {
			t.Errorf("RowScore(level %s) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRowScoreUnknownLevelFallsThrough(t *testing.T) {
	row := types.BiomarkerRow{Value: 85, RefLow: ptr(70), RefHigh: ptr(99), Level: "optimo"}
	if got := RowScore(row); got != 1 {
		t.Errorf("unknown level must fall through to numeric scoring, got %v", got)
	}
}

func TestComputeScoresAggregation(t *testing.T) {
	rows := []types.BiomarkerRow{
		{Name: "Colesterol Total", Category: types.CategoryCardiovascular, Level: types.LevelGood},
		{Name: "Trigliceridos", Category: types.CategoryCardiovascular, Level: types.LevelPoor},
		{Name: "Glucosa", Category: types.CategoryMetabolic, Level: types.LevelExcellent},
		{Name: "Ferritina", Category: "desconocida", Level: types.LevelFair},
	}

	report := ComputeScores(rows)

	wantOverall := (0.85 + 0.2 + 1.0 + 0.6) / 4
	if math.Abs(report.Overall-wantOverall) > 1e-9 {
		t.Errorf("Overall = %v, want %v", report.Overall, wantOverall)
	}

	byCategory := make(map[types.Category]float64, len(report.Categories))
	for _, cs := range report.Categories {
		byCategory[cs.Category] = cs.Score
	}
	if got := byCategory[types.CategoryCardiovascular]; math.Abs(got-0.525) > 1e-9 {
		t.Errorf("cardiovascular = %v, want 0.525", got)
	}
	if got := byCategory[types.CategoryMetabolic]; got != 1.0 {
		t.Errorf("metabolic = %v, want 1.0", got)
	}
	// The unrecognized category folds into general.
	if got := byCategory[types.CategoryGeneral]; got != 0.6 {
		t.Errorf("general = %v, want 0.6", got)
	}
	// Untouched categories score neutral.
	if got := byCategory[types.CategoryImmune]; got != 1.0 {
		t.Errorf("immune = %v, want 1.0", got)
	}
}

func TestComputeScoresCategoryOrderFixed(t *testing.T) {
	report := ComputeScores(nil)
	if report.Overall != 1 {
		t.Errorf("empty input overall = %v, want 1", report.Overall)
	}
	if len(report.Categories) != len(types.CategoryOrder) {
		t.Fatalf("got %d categories, want %d", len(report.Categories), len(types.CategoryOrder))
	}
	for i, cs := range report.Categories {
		if cs.Category != types.CategoryOrder[i] {
			t.Errorf("category[%d] = %s, want %s", i, cs.Category, types.CategoryOrder[i])
		}
		if cs.Score != 1 {
			t.Errorf("category %s score = %v, want neutral 1", cs.Category, cs.Score)
		}
	}
}

func TestRowSourceVariants(t *testing.T) {
	list := []types.BiomarkerRow{{Name: "Glucosa", Value: 92}}
	if got := ListSource(list).Rows(); len(got) != 1 || got[0].Name != "Glucosa" {
		t.Errorf("ListSource.Rows() = %+v", got)
	}

	keyed := KeyedSource(map[string]types.BiomarkerRow{
		"Glucosa":  {Value: 92},
		"Albumina": {Name: "Albúmina", Value: 4.5},
	}).Rows()
	if len(keyed) != 2 {
		t.Fatalf("keyed rows = %d, want 2", len(keyed))
	}
	if keyed[0].Name != "Albúmina" || keyed[1].Name != "Glucosa" {
		t.Errorf("keyed order/names = %q, %q", keyed[0].Name, keyed[1].Name)
	}
	if keyed[1].Value != 92 {
		t.Errorf("keyed value = %v", keyed[1].Value)
	}

	flat := FlatSource(map[string]float64{"b": 2, "a": 1}).Rows()
	if len(flat) != 2 || flat[0].Name != "a" || flat[1].Name != "b" {
		t.Errorf("flat rows = %+v, want sorted key order", flat)
	}
}

func TestRowsFromRecords(t *testing.T) {
	ds := &types.ReferenceDataset{
		Version: 1,
		Biomarkers: []types.ReferenceEntry{
			{
				ID:       "glucosa",
				Name:     "Glucosa",
				Category: types.CategoryMetabolic,
				Levels: map[types.Level]types.LevelRule{
					types.LevelGood: {Rule: "70 - 99"},
					types.LevelPoor: {Rule: "< 70 o > 125"},
				},
			},
		},
	}
	ds.BuildIndex()

	records := []types.BiomarkerRecord{
		{Biomarker: "Glucosa", Value: types.NumberValue(92), Units: "mg/dl"},
		{Biomarker: "Ferritina", Value: types.NumberValue(120), Units: "ng/ml", Category: types.CategoryImmune},
		{Biomarker: "Grupo Sanguineo", Value: types.TextValue("o positivo")},
	}

	rows := RowsFromRecords(records, ds, types.SexUnspecified)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Level != types.LevelGood {
		t.Errorf("glucosa level = %s, want bueno", rows[0].Level)
	}
	if rows[0].Category != types.CategoryMetabolic {
		t.Errorf("glucosa category = %s, want inherited metabolic", rows[0].Category)
	}

	// Not in the dataset: no level, keeps its own category, scores neutral.
	if rows[1].Level != "" || rows[1].Category != types.CategoryImmune {
		t.Errorf("ferritina row = %+v", rows[1])
	}
	if RowScore(rows[1]) != 1 {
		t.Errorf("unmatched row must score neutral")
	}

	// Text-valued record stays unleveled.
	if rows[2].Level != "" || rows[2].Value != 0 {
		t.Errorf("text row = %+v", rows[2])
	}
}
