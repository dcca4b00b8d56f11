// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records the outcome of every conversion in a SQLite
// database so batch runs can skip unchanged sources and past runs can be
// listed or exported.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docx2html/pkg/types"
)

const dbFile = "docx2html.db"

// Entry is one row of the conversions table.
type Entry struct {
	SourcePath    string                 `json:"source_path" yaml:"source_path"`
	SourceModTime time.Time              `json:"source_mod_time" yaml:"source_mod_time"`
	OutputPath    string                 `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Status        types.ConversionStatus `json:"status" yaml:"status"`
	Stats         types.MarkupStats      `json:"stats" yaml:"stats"`
	Bytes         int                    `json:"bytes" yaml:"bytes"`
	Error         string                 `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt   time.Time              `json:"converted_at" yaml:"converted_at"`
}

// Store manages the ledger database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the ledger at cfg.Dir/docx2html.db and ensures the
// schema exists.
func Open(cfg types.LedgerConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultConfig().Ledger.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
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

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source_path TEXT PRIMARY KEY,
			source_mod_time TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			blocks INTEGER NOT NULL DEFAULT 0,
			paragraphs INTEGER NOT NULL DEFAULT 0,
			tables INTEGER NOT NULL DEFAULT 0,
			lists INTEGER NOT NULL DEFAULT 0,
			list_items INTEGER NOT NULL DEFAULT 0,
			headings INTEGER NOT NULL DEFAULT 0,
			faqs INTEGER NOT NULL DEFAULT 0,
			bytes INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts the outcome for e.SourcePath. A zero ConvertedAt is set
// to the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.SourcePath == "" {
		return errors.New("recording conversion: empty source path")
	}
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source_path, source_mod_time, output_path, status,
			blocks, paragraphs, tables, lists, list_items, headings, faqs, bytes, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			source_mod_time=excluded.source_mod_time, output_path=excluded.output_path,
			status=excluded.status, blocks=excluded.blocks, paragraphs=excluded.paragraphs,
			tables=excluded.tables, lists=excluded.lists, list_items=excluded.list_items,
			headings=excluded.headings, faqs=excluded.faqs, bytes=excluded.bytes,
			error=excluded.error, converted_at=excluded.converted_at`,
		e.SourcePath, formatTime(e.SourceModTime), e.OutputPath, string(e.Status),
		e.Stats.Blocks(), e.Stats.Paragraphs, e.Stats.Tables, e.Stats.Lists, e.Stats.ListItems,
		e.Stats.Headings, e.Stats.FAQs, e.Bytes, e.Error, formatTime(e.ConvertedAt),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.SourcePath, err)
	}
	return nil
}

// Unchanged reports whether path was last converted successfully from a
// source with the same modification time.
func (s *Store) Unchanged(ctx context.Context, path string, modTime time.Time) (bool, error) {
	var stored, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_mod_time, status FROM conversions WHERE source_path = ?`, path,
	).Scan(&stored, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", path, err)
	}
	if status == string(types.ConversionFailed) {
		return false, nil
	}
	return stored == formatTime(modTime), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
