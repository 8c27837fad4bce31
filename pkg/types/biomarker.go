// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the biomarker-engine pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.yaml.in/yaml/v3"
)

// Category groups biomarkers for score aggregation and rendering.
type Category string

const (
	CategoryCardiovascular Category = "cardiovascular"
	CategoryMetabolic      Category = "metabolic"
	CategoryImmune         Category = "immune"
	CategoryHormonal       Category = "hormonal"
	CategoryGeneral        Category = "general"
)

// CategoryOrder is the fixed iteration order for category aggregation.
// Renderers and tests rely on this order being stable.
var CategoryOrder = []Category{
	CategoryCardiovascular,
	CategoryMetabolic,
	CategoryImmune,
	CategoryHormonal,
	CategoryGeneral,
}

// KnownCategory reports whether c is one of the five fixed categories.
func KnownCategory(c Category) bool {
	switch c {
	case CategoryCardiovascular, CategoryMetabolic, CategoryImmune,
		CategoryHormonal, CategoryGeneral:
		return true
	}
	return false
}

// CatalogEntry describes one biomarker the extractor can recognize.
// The catalog is immutable after load.
type CatalogEntry struct {
	// Name is the canonical display name (e.g. "Colesterol Total").
	Name string `json:"name" yaml:"name"`

	// Aliases lists alternative spellings found in lab reports. The
	// canonical name itself is always matchable and need not be repeated.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Category assigns the biomarker to one of the fixed categories.
	// Empty means general.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	// SkipIf lists terms that suppress a match for this biomarker when
	// any of them appears elsewhere on the same line. Terms are matched
	// on normalized text at token boundaries. This keeps known false
	// positives (e.g. "hemoglobina" on a glycated-hemoglobin line) out
	// of the results without code changes.
	SkipIf []string `json:"skip_if,omitempty" yaml:"skip_if,omitempty"`
}

// Value is a measurement captured from a report: numeric when the source
// token parsed cleanly, otherwise the raw token unmodified. Extraction
// never fails on an unparseable token; the raw text is retained for display.
type Value struct {
	Number  float64
	Raw     string
	Numeric bool
}

// NumberValue wraps a parsed numeric measurement.
func NumberValue(f float64) Value {
	return Value{Number: f, Numeric: true}
}

// TextValue wraps a token that did not parse as a number.
func TextValue(s string) Value {
	return Value{Raw: s}
}

// Float returns the numeric value and whether one is present.
func (v Value) Float() (float64, bool) {
	return v.Number, v.Numeric
}

// String renders the value for display.
func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Raw
}

// MarshalJSON encodes the value as a JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Raw)
}

// UnmarshalJSON accepts either a JSON number or a string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = NumberValue(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*v = TextValue(s)
	return nil
}

// MarshalYAML encodes the value as a YAML number or string.
func (v Value) MarshalYAML() (any, error) {
	if v.Numeric {
		return v.Number, nil
	}
	return v.Raw, nil
}

// UnmarshalYAML accepts either a YAML number or a string.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err == nil {
		*v = NumberValue(f)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*v = TextValue(s)
	return nil
}

// BiomarkerRecord is one extracted observation. At most one record exists
// per canonical biomarker per source document: the first occurrence in
// document order wins and later occurrences are discarded.
type BiomarkerRecord struct {
	// Biomarker is the canonical name from the catalog.
	Biomarker string `json:"biomarker" yaml:"biomarker"`

	// Value is the captured measurement, numeric or raw text.
	Value Value `json:"value" yaml:"value"`

	// Units is the unit token as captured from the source line, with its
	// original casing (e.g. "mg/dL"). Empty when no unit was found.
	Units string `json:"units,omitempty" yaml:"units,omitempty"`

	// Category is copied from the catalog entry.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	// Date is the observation date supplied for the extraction run.
	Date *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// Analysis is a stored extraction run: a record list keyed by an ID and
// a display name.
type Analysis struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
	DatasetVersion int               `json:"dataset_version,omitempty" yaml:"dataset_version,omitempty"`
	Records        []BiomarkerRecord `json:"records" yaml:"records"`
}
