// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/biomarker-engine/internal/httputil"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

// cacheFile is the locally persisted dataset under the cache directory.
const cacheFile = "reference-dataset.json"

// datasetSchema validates the structural shape of the dataset wire
// format. Rule-text semantics are not validated here; malformed rule
// expressions simply never match at evaluation time.
const datasetSchema = `{
	"type": "object",
	"required": ["version", "generated_at", "biomarkers"],
	"properties": {
		"version": {"type": "integer", "minimum": 1},
		"generated_at": {"type": "string"},
		"biomarkers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "category", "levels"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1},
					"unit": {"type": "string"},
					"category": {"enum": ["cardiovascular", "metabolic", "immune", "hormonal", "general"]},
					"levels": {
						"type": "object",
						"additionalProperties": {
							"type": "object",
							"properties": {
								"rule": {"type": "string"},
								"male": {"type": "string"},
								"female": {"type": "string"},
								"raw": {"type": "string"}
							}
						}
					}
				}
			}
		}
	}
}`

// compiledSchema is built once at package init; the schema is a constant
// so compilation cannot fail at runtime.
var compiledSchema = jsonschema.MustCompileString("dataset.json", datasetSchema)

// Loader fetches the reference dataset from its remote location, keeps a
// local cache, and hands out the immutable parsed structure.
type Loader struct {
	cfg    types.ReferenceConfig
	client *http.Client
}

// NewLoader builds a Loader from the reference configuration.
func NewLoader(cfg types.ReferenceConfig) *Loader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Load returns the cached dataset when present, fetching from the remote
// location otherwise.
func (l *Loader) Load(ctx context.Context) (*types.ReferenceDataset, error) {
	data, err := os.ReadFile(l.cachePath())
	if err == nil {
		return Parse(data)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading cached dataset: %w", err)
	}
	return l.Fetch(ctx)
}

// Fetch downloads the dataset, validates it, persists it to the cache
// file, and returns the parsed structure.
func (l *Loader) Fetch(ctx context.Context) (*types.ReferenceDataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building dataset request: %w", err)
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}
	if l.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, l.client, req, l.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading dataset response: %w", err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := l.writeCache(data); err != nil {
		return nil, err
	}
	return ds, nil
}

// Parse validates raw dataset JSON against the schema and unmarshals it.
// Structural problems are reported as ErrInvalidConfig.
func Parse(data []byte) (*types.ReferenceDataset, error) {
	var v any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: dataset is not valid JSON: %v", types.ErrInvalidConfig, err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: dataset failed validation: %v", types.ErrInvalidConfig, err)
	}

	var ds types.ReferenceDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("%w: decoding dataset: %v", types.ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(ds.Biomarkers))
	for _, e := range ds.Biomarkers {
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate dataset entry %q", types.ErrInvalidConfig, e.ID)
		}
		seen[e.ID] = true
		for level := range e.Levels {
			if !types.KnownLevel(level) {
				return nil, fmt.Errorf("%w: entry %q has unknown level %q",
					types.ErrInvalidConfig, e.ID, level)
			}
		}
	}

	ds.BuildIndex()
	return &ds, nil
}

func (l *Loader) cachePath() string {
	dir := l.cfg.CacheDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, cacheFile)
}

func (l *Loader) writeCache(data []byte) error {
	dir := filepath.Dir(l.cachePath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(l.cachePath(), data, 0o644); err != nil {
		return fmt.Errorf("writing dataset cache: %w", err)
	}
	return nil
}

// Describe renders a one-line summary of a loaded dataset.
func Describe(ds *types.ReferenceDataset) string {
	return fmt.Sprintf("version %d, generated %s, %d biomarkers",
		ds.Version, ds.GeneratedAt.UTC().Format(time.RFC3339), len(ds.Biomarkers))
}
