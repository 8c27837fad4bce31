// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BiomarkerRow is the scoring engine's input unit. It may originate from
// a BiomarkerRecord paired with a ReferenceEntry, or carry raw numeric
// bounds embedded directly in the source row.
type BiomarkerRow struct {
	// Name is the biomarker display name.
	Name string `json:"name" yaml:"name"`

	// Value is the numeric measurement.
	Value float64 `json:"value" yaml:"value"`

	// Units is the measurement unit, if known.
	Units string `json:"units,omitempty" yaml:"units,omitempty"`

	// RefLow and RefHigh are the numeric reference bounds. A nil bound
	// is treated as unbounded on that side.
	RefLow  *float64 `json:"ref_low,omitempty" yaml:"ref_low,omitempty"`
	RefHigh *float64 `json:"ref_high,omitempty" yaml:"ref_high,omitempty"`

	// Category assigns the row to one of the fixed categories. Unknown
	// or missing categories fold into general during aggregation.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	// Level is a precomputed qualitative level. When set, scoring maps
	// it through the fixed level score table and skips the numeric
	// distance computation entirely.
	Level Level `json:"level,omitempty" yaml:"level,omitempty"`
}

// CategoryScore is the mean row score for one category.
type CategoryScore struct {
	Category Category `json:"category" yaml:"category"`
	Score    float64  `json:"score" yaml:"score"`
}

// ScoreReport aggregates row scores per category and overall. Scores are
// in [0,1]; 1.0 means perfectly in range or no reference available.
type ScoreReport struct {
	Overall    float64         `json:"overall" yaml:"overall"`
	Categories []CategoryScore `json:"cat_scores" yaml:"cat_scores"`
}
