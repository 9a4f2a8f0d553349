// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed extraction runs in a SQLite journal so
// past sessions can be listed and audited. The journal is observability
// only; the JSON content record remains the durable contract.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-distill/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "sessions.db"
)

// defaultListLimit bounds List when the caller passes no limit.
const defaultListLimit = 20

// Entry is one recorded extraction run.
type Entry struct {
	SessionID         string
	PDFPath           string
	ExtractedAt       time.Time
	ConversionSeconds float64
	ImageCount        int
	TextChars         int
	ContentPath       string
}

// Store manages the session journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at outputDir/index/sessions.db,
// creating the schema if it does not exist.
func Open(outputDir string) (*Store, error) {
	dir := filepath.Join(outputDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening session journal: %w", err)
	}

	s := &Store{db: db}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		pdf_path TEXT NOT NULL,
		extracted_at TEXT NOT NULL,
		conversion_seconds REAL NOT NULL,
		image_count INTEGER NOT NULL,
		text_chars INTEGER NOT NULL,
		content_path TEXT NOT NULL
	)`)
	return err
}

// Record journals one completed extraction and the path its content record
// was saved to.
func (s *Store) Record(ctx context.Context, rec *types.ContentRecord, contentPath string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions
			(session_id, pdf_path, extracted_at, conversion_seconds, image_count, text_chars, content_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.PDFPath,
		rec.ExtractionTime.UTC().Format(time.RFC3339Nano),
		rec.ConversionTime.Seconds(),
		len(rec.Images),
		len(rec.FullText),
		contentPath,
	)
	if err != nil {
		return fmt.Errorf("recording session %s: %w", rec.SessionID, err)
	}
	return nil
}

// List returns the most recent entries, newest first. A non-positive limit
// uses the default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, pdf_path, extracted_at, conversion_seconds, image_count, text_chars, content_path
		 FROM sessions ORDER BY extracted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var extractedAt string
		if err := rows.Scan(&e.SessionID, &e.PDFPath, &extractedAt,
			&e.ConversionSeconds, &e.ImageCount, &e.TextChars, &e.ContentPath); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, extractedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp for %s: %w", e.SessionID, err)
		}
		e.ExtractedAt = ts
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
