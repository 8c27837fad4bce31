// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists finished analyses (record lists keyed by an ID
// and a display name) in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/biomarker-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "analyses.db"
)

// Store manages the analyses SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the database at DataDir/index/analyses.db,
// creating the schema when missing.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			dataset_version INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			biomarker TEXT NOT NULL,
			value_num REAL,
			value_text TEXT,
			units TEXT,
			category TEXT,
			date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_analysis_id ON records(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_biomarker ON records(biomarker)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save persists one analysis and returns its generated identifier.
// Record order is preserved through the position column so the
// first-match-wins document order survives a round trip.
func (s *Store) Save(ctx context.Context, name string, datasetVersion int, records []types.BiomarkerRecord) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analyses (id, name, created_at, dataset_version) VALUES (?, ?, ?, ?)`,
		id, name, createdAt, datasetVersion,
	)
	if err != nil {
		return "", fmt.Errorf("inserting analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (analysis_id, position, biomarker, value_num, value_text, units, category, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		var valueNum sql.NullFloat64
		var valueText sql.NullString
		if f, ok := rec.Value.Float(); ok {
			valueNum = sql.NullFloat64{Float64: f, Valid: true}
		} else {
			valueText = sql.NullString{String: rec.Value.Raw, Valid: true}
		}

		var date sql.NullString
		if rec.Date != nil {
			date = sql.NullString{String: rec.Date.UTC().Format(time.RFC3339), Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			id, i, rec.Biomarker, valueNum, valueText, rec.Units, string(rec.Category), date,
		)
		if err != nil {
			return "", fmt.Errorf("inserting record %s: %w", rec.Biomarker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing analysis: %w", err)
	}
	return id, nil
}

// Summary is one analysis row without its records.
type Summary struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	DatasetVersion int       `json:"dataset_version,omitempty" yaml:"dataset_version,omitempty"`
	RecordCount    int       `json:"record_count" yaml:"record_count"`
}

// List returns stored analyses, newest first, capped at the configured
// maximum.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.name, a.created_at, COALESCE(a.dataset_version, 0),
		        (SELECT COUNT(*) FROM records r WHERE r.analysis_id = a.id)
		 FROM analyses a
		 ORDER BY a.created_at DESC
		 LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Name, &createdAt, &sum.DatasetVersion, &sum.RecordCount); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get returns one stored analysis with its records in original order.
func (s *Store) Get(ctx context.Context, id string) (*types.Analysis, error) {
	analysis := &types.Analysis{ID: id}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, created_at, COALESCE(dataset_version, 0) FROM analyses WHERE id = ?`, id,
	).Scan(&analysis.Name, &createdAt, &analysis.DatasetVersion)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis: %w", err)
	}
	analysis.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT biomarker, value_num, value_text, units, category, date
		 FROM records WHERE analysis_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec types.BiomarkerRecord
		var valueNum sql.NullFloat64
		var valueText, units, category, date sql.NullString
		if err := rows.Scan(&rec.Biomarker, &valueNum, &valueText, &units, &category, &date); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if valueNum.Valid {
			rec.Value = types.NumberValue(valueNum.Float64)
		} else {
			rec.Value = types.TextValue(valueText.String)
		}
		rec.Units = units.String
		rec.Category = types.Category(category.String)
		if date.Valid && date.String != "" {
			if t, err := time.Parse(time.RFC3339, date.String); err == nil {
				rec.Date = &t
			}
		}
		analysis.Records = append(analysis.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return analysis, nil
}

// Delete removes an analysis and its records.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("analysis %s not found", id)
	}
	return nil
}
