// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the biomarker catalog and builds the alias index
// the extractor scans with. Catalog problems (duplicate aliases, unknown
// categories) surface here at load time as ErrInvalidConfig, never during
// per-line parsing.
package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// Load returns the catalog entries from a YAML file, or the built-in
// table when path is empty. Entries are validated: every entry needs a
// name, and a non-empty category must be one of the fixed five.
func Load(path string) ([]types.CatalogEntry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var entries []types.CatalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing catalog %s: %v", types.ErrInvalidConfig, path, err)
	}

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: catalog entry %d has no name", types.ErrInvalidConfig, i)
		}
		if e.Category != "" && !types.KnownCategory(e.Category) {
			return nil, fmt.Errorf("%w: catalog entry %q has unknown category %q",
				types.ErrInvalidConfig, e.Name, e.Category)
		}
	}

	return entries, nil
}
