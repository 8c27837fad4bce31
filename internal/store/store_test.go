// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.BiomarkerRecord {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return []types.BiomarkerRecord{
		{Biomarker: "Glucosa", Value: types.NumberValue(92), Units: "mg/dl", Category: types.CategoryMetabolic, Date: &date},
		{Biomarker: "Colesterol Total", Value: types.NumberValue(210), Units: "mg/dL", Category: types.CategoryCardiovascular},
		{Biomarker: "Grupo Sanguineo", Value: types.TextValue("o positivo")},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "analitica marzo", 3, sampleRecords())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "analitica marzo", got.Name)
	assert.Equal(t, 3, got.DatasetVersion)
	require.Len(t, got.Records, 3)

	// Document order survives the round trip.
	assert.Equal(t, "Glucosa", got.Records[0].Biomarker)
	assert.Equal(t, "Colesterol Total", got.Records[1].Biomarker)
	assert.Equal(t, "Grupo Sanguineo", got.Records[2].Biomarker)

	v, ok := got.Records[0].Value.Float()
	require.True(t, ok)
	assert.Equal(t, 92.0, v)
	assert.Equal(t, "mg/dl", got.Records[0].Units)
	assert.Equal(t, types.CategoryMetabolic, got.Records[0].Category)
	require.NotNil(t, got.Records[0].Date)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got.Records[0].Date.UTC())

	assert.Equal(t, "mg/dL", got.Records[1].Units)
	assert.Nil(t, got.Records[1].Date)

	// Text value stays textual.
	_, ok = got.Records[2].Value.Float()
	assert.False(t, ok)
	assert.Equal(t, "o positivo", got.Records[2].Value.String())
}

func TestGetUnknownID(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListNewestFirstAndCapped(t *testing.T) {
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	for _, name := range []string{"primera", "segunda", "tercera"} {
		_, err := s.Save(ctx, name, 1, sampleRecords())
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "tercera", summaries[0].Name)
	assert.Equal(t, "segunda", summaries[1].Name)
	assert.Equal(t, 3, summaries[0].RecordCount)
}

func TestDeleteCascades(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "borrable", 1, sampleRecords())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.Error(t, err)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE analysis_id = ?`, id).Scan(&count))
	assert.Zero(t, count, "records must cascade on delete")

	assert.Error(t, s.Delete(ctx, id), "second delete must report not found")
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "exportable", 2, sampleRecords())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, id, &buf))

	var decoded types.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, id, decoded.ID)
	assert.Equal(t, "exportable", decoded.Name)
	require.Len(t, decoded.Records, 3)
	v, ok := decoded.Records[0].Value.Float()
	require.True(t, ok)
	assert.Equal(t, 92.0, v)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "exportable", 2, sampleRecords())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, id, &buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "exportable"))
	assert.True(t, strings.Contains(out, "Glucosa"))
	assert.True(t, strings.Contains(out, "o positivo"))
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	id, err := s.Save(ctx, "persistente", 1, sampleRecords())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Schema creation is idempotent; existing data survives.
	s2, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "persistente", got.Name)

	_, err = os.Stat(filepath.Join(dir, "index", "analyses.db"))
	assert.NoError(t, err)
}
