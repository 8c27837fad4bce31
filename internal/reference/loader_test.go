// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

const sampleDataset = `{
	"version": 3,
	"generated_at": "2026-02-01T00:00:00Z",
	"biomarkers": [
		{
			"id": "glucosa",
			"name": "Glucosa",
			"unit": "mg/dL",
			"category": "metabolic",
			"levels": {
				"bueno": {"rule": "70 - 99"},
				"malo": {"rule": "< 70 o > 125"}
			}
		},
		{
			"id": "hemoglobina",
			"name": "Hemoglobina",
			"unit": "g/dL",
			"category": "general",
			"levels": {
				"bueno": {"male": "13.5 - 17.5", "female": "12 - 15.5"}
			}
		}
	]
}`

func TestParseValidDataset(t *testing.T) {
	ds, err := Parse([]byte(sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Version)
	assert.Len(t, ds.Biomarkers, 2)

	entry, ok := ds.Lookup("glucosa")
	require.True(t, ok)
	assert.Equal(t, "Glucosa", entry.Name)
	assert.Equal(t, "70 - 99", entry.Levels[types.LevelGood].Rule)

	entry, ok = ds.Lookup("hemoglobina")
	require.True(t, ok)
	assert.Equal(t, "13.5 - 17.5", entry.Levels[types.LevelGood].Male)
}

func TestParseRejectsMalformedDatasets(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"version": 3`},
		{"missing version", `{"generated_at": "2026-02-01T00:00:00Z", "biomarkers": []}`},
		{"version below one", `{"version": 0, "generated_at": "x", "biomarkers": []}`},
		{"entry without id", `{"version": 1, "generated_at": "2026-02-01T00:00:00Z",
			"biomarkers": [{"name": "Glucosa", "category": "metabolic", "levels": {}}]}`},
		{"unknown category", `{"version": 1, "generated_at": "2026-02-01T00:00:00Z",
			"biomarkers": [{"id": "x", "name": "X", "category": "renal", "levels": {}}]}`},
		{"duplicate id", `{"version": 1, "generated_at": "2026-02-01T00:00:00Z",
			"biomarkers": [
				{"id": "x", "name": "X", "category": "general", "levels": {}},
				{"id": "x", "name": "X2", "category": "general", "levels": {}}
			]}`},
		{"unknown level", `{"version": 1, "generated_at": "2026-02-01T00:00:00Z",
			"biomarkers": [{"id": "x", "name": "X", "category": "general",
				"levels": {"optimo": {"rule": "1 - 2"}}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidConfig)
		})
	}
}

func TestFetchWritesCache(t *testing.T) {
	var gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	dir := t.TempDir()
	loader := NewLoader(types.ReferenceConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "biomarker-engine/test"},
		URL:        srv.URL,
		CacheDir:   dir,
		APIKey:     "sk-test",
	})

	ds, err := loader.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Version)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "biomarker-engine/test", gotUA)

	cached, err := os.ReadFile(filepath.Join(dir, cacheFile))
	require.NoError(t, err)
	assert.JSONEq(t, sampleDataset, string(cached))
}

func TestFetchRejectsInvalidPayloadWithoutCaching(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version": 0}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	loader := NewLoader(types.ReferenceConfig{URL: srv.URL, CacheDir: dir})

	_, err := loader.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = os.Stat(filepath.Join(dir, cacheFile))
	assert.True(t, os.IsNotExist(err), "invalid payload must not be cached")
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader(types.ReferenceConfig{URL: srv.URL, CacheDir: t.TempDir()})
	_, err := loader.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestLoadPrefersCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), []byte(sampleDataset), 0o644))

	// URL points nowhere; a network attempt would fail loudly.
	loader := NewLoader(types.ReferenceConfig{URL: "http://127.0.0.1:0", CacheDir: dir})

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Version)
}

func TestLoadFallsBackToFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	dir := t.TempDir()
	loader := NewLoader(types.ReferenceConfig{URL: srv.URL, CacheDir: dir})

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Version)

	// Second load must come from the cache written by the first.
	srv.Close()
	ds, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Version)
}

func TestDescribe(t *testing.T) {
	ds, err := Parse([]byte(sampleDataset))
	require.NoError(t, err)
	assert.Equal(t, "version 3, generated 2026-02-01T00:00:00Z, 2 biomarkers", Describe(ds))
}
