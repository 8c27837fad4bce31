// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Level is a qualitative reference level. Levels are totally ordered from
// best to worst; see LevelOrder.
type Level string

const (
	LevelExcellent Level = "excelente"
	LevelGood      Level = "bueno"
	LevelFair      Level = "regular"
	LevelPoor      Level = "malo"
)

// LevelOrder lists the levels best to worst. Rule evaluation tries them
// in this order and returns the first match.
var LevelOrder = []Level{LevelExcellent, LevelGood, LevelFair, LevelPoor}

// KnownLevel reports whether l is one of the four fixed levels.
func KnownLevel(l Level) bool {
	switch l {
	case LevelExcellent, LevelGood, LevelFair, LevelPoor:
		return true
	}
	return false
}

// Sex selects which rule-text variant applies during evaluation.
type Sex string

const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

// LevelRule holds the rule-text variants for one qualitative level.
// Rule texts are small expressions: a numeric range ("70 - 99"), a
// comparator ("< 70"), a bare number, or a disjunction of those joined
// by "o"/"or", "/" or ";".
type LevelRule struct {
	// Rule is the sex-neutral rule text. Empty when only sex-specific
	// variants exist.
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`

	// Male and Female are sex-specific rule texts.
	Male   string `json:"male,omitempty" yaml:"male,omitempty"`
	Female string `json:"female,omitempty" yaml:"female,omitempty"`

	// Raw preserves the original unparsed text from the dataset source.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// ForSex picks the rule text for the given sex: the exact sex-specific
// variant if present, else the sex-neutral rule, else male then female.
func (r LevelRule) ForSex(sex Sex) string {
	switch sex {
	case SexMale:
		if r.Male != "" {
			return r.Male
		}
	case SexFemale:
		if r.Female != "" {
			return r.Female
		}
	}
	if r.Rule != "" {
		return r.Rule
	}
	if r.Male != "" {
		return r.Male
	}
	return r.Female
}

// ReferenceEntry holds the reference rules for one biomarker. Entries are
// immutable after the dataset is loaded.
type ReferenceEntry struct {
	// ID is the slug of the canonical biomarker name (e.g.
	// "colesterol-total").
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Unit is the expected measurement unit, if any.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Category assigns the biomarker to one of the fixed categories.
	Category Category `json:"category" yaml:"category"`

	// Levels maps each qualitative level to its rule variants. Levels
	// without rules are simply absent.
	Levels map[Level]LevelRule `json:"levels" yaml:"levels"`
}

// ReferenceDataset is the versioned reference rule collection fetched
// from a remote location and cached locally. Immutable after load.
type ReferenceDataset struct {
	Version     int              `json:"version" yaml:"version"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Biomarkers  []ReferenceEntry `json:"biomarkers" yaml:"biomarkers"`

	// ByID indexes Biomarkers by entry ID. Built once after load; not
	// part of the wire format.
	ByID map[string]*ReferenceEntry `json:"-" yaml:"-"`
}

// BuildIndex (re)builds the ByID lookup from Biomarkers.
func (d *ReferenceDataset) BuildIndex() {
	d.ByID = make(map[string]*ReferenceEntry, len(d.Biomarkers))
	for i := range d.Biomarkers {
		d.ByID[d.Biomarkers[i].ID] = &d.Biomarkers[i]
	}
}

// Lookup returns the entry with the given ID, if present.
func (d *ReferenceDataset) Lookup(id string) (*ReferenceEntry, bool) {
	e, ok := d.ByID[id]
	return e, ok
}
