// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the publication catalog (institutions, authors,
// documents, authorship edges) in SQLite and implements the read primitives
// the retrieval engine consumes.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/akudrin/bibliograph/pkg/types"
)

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at cfg.DBPath and creates the
// schema when it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("catalog: db_path is required")
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

// Authorship columns carry no REFERENCES clauses: edges are written by
// harvest runs that may interleave with author or document removal, and a
// stale edge is a normal state the retrieval engine skips.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS institutions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			country TEXT,
			city TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			eid TEXT,
			orc_id TEXT,
			given_name TEXT,
			family_name TEXT,
			full_name TEXT,
			affiliated_institution_id TEXT NOT NULL,
			h_index INTEGER,
			cited_by_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_authors_institution
			ON authors(affiliated_institution_id)`,
		`CREATE TABLE IF NOT EXISTS documents (
			scopus_id TEXT PRIMARY KEY,
			eid TEXT,
			main_title TEXT NOT NULL,
			pub_year INTEGER NOT NULL,
			document_type TEXT,
			publication_stage TEXT,
			doi TEXT,
			source_title TEXT,
			total_authors INTEGER,
			citations_count INTEGER,
			references_count INTEGER,
			free_to_read INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_year ON documents(pub_year)`,
		`CREATE TABLE IF NOT EXISTS authorship (
			document_id TEXT NOT NULL,
			author_id TEXT NOT NULL,
			PRIMARY KEY (document_id, author_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_authorship_author ON authorship(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_authorship_document ON authorship(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Stats holds per-table record counts.
type Stats struct {
	Institutions int `json:"institutions" yaml:"institutions"`
	Authors      int `json:"authors" yaml:"authors"`
	Documents    int `json:"documents" yaml:"documents"`
	Authorship   int `json:"authorship" yaml:"authorship"`
}

// Stats counts the records in every catalog table.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"institutions", &stats.Institutions},
		{"authors", &stats.Authors},
		{"documents", &stats.Documents},
		{"authorship", &stats.Authorship},
	} {
		query, args, err := sq.Select("COUNT(*)").From(c.table).ToSql()
		if err != nil {
			return Stats{}, fmt.Errorf("building count for %s: %w", c.table, err)
		}
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return stats, nil
}
