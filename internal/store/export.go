// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes one stored analysis, records included, as YAML.
func (s *Store) ExportYAML(ctx context.Context, id string, w io.Writer) error {
	analysis, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes one stored analysis, records included, as indented
// JSON.
func (s *Store) ExportJSON(ctx context.Context, id string, w io.Writer) error {
	analysis, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}
