// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"time"
)

// ErrInvalidConfig marks configuration errors detected at load time:
// duplicate catalog aliases mapping to different biomarkers, or a
// malformed reference dataset. Per-line parsing never produces it.
var ErrInvalidConfig = errors.New("invalid configuration")

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "biomarker-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ParserConfig holds settings for the extraction stage.
type ParserConfig struct {
	// CatalogPath points at a YAML catalog file. Empty uses the built-in
	// catalog.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`
}

// ReferenceConfig holds settings for the reference dataset loader.
type ReferenceConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the remote location of the reference dataset JSON.
	URL string `json:"url" yaml:"url"`

	// CacheDir is the directory holding the locally persisted dataset.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// APIKey is an optional bearer token for the dataset endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited
	// fetches (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for analysis persistence.
type StoreConfig struct {
	// DataDir is the base data directory (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed analyses
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parser    ParserConfig    `json:"parser" yaml:"parser"`
	Reference ReferenceConfig `json:"reference" yaml:"reference"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
