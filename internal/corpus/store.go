// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists examples in a local SQLite index with full-text
// search over sentence text.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "tacred.db"
)

// Store manages the corpus SQLite database.
type Store struct {
	db         *sql.DB
	corpusDir  string
	maxResults int
}

// NewStore opens or creates the corpus database at
// corpusDir/index/tacred.db, creating the schema if it does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CorpusDir, indexDir)
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

	s := &Store{
		db:         db,
		corpusDir:  cfg.CorpusDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS examples (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			docid TEXT NOT NULL,
			relation TEXT NOT NULL,
			part TEXT,
			source_file TEXT NOT NULL,
			sentence TEXT NOT NULL,
			token_count INTEGER NOT NULL,
			subj_text TEXT NOT NULL,
			subj_type TEXT NOT NULL,
			subj_start INTEGER NOT NULL,
			subj_end INTEGER NOT NULL,
			obj_text TEXT NOT NULL,
			obj_type TEXT NOT NULL,
			obj_start INTEGER NOT NULL,
			obj_end INTEGER NOT NULL,
			tokens TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_relation ON examples(relation)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_part ON examples(part)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_source ON examples(source_file)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='examples_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE examples_fts USING fts5(sentence, content=examples, content_rowid=rowid)`,
			`CREATE TRIGGER examples_ai AFTER INSERT ON examples BEGIN
				INSERT INTO examples_fts(rowid, sentence) VALUES (new.rowid, new.sentence);
			END`,
			`CREATE TRIGGER examples_ad AFTER DELETE ON examples BEGIN
				INSERT INTO examples_fts(examples_fts, rowid, sentence) VALUES('delete', old.rowid, old.sentence);
			END`,
			`CREATE TRIGGER examples_au AFTER UPDATE ON examples BEGIN
				INSERT INTO examples_fts(examples_fts, rowid, sentence) VALUES('delete', old.rowid, old.sentence);
				INSERT INTO examples_fts(rowid, sentence) VALUES (new.rowid, new.sentence);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a corpus indexing run.
type IngestSummary struct {
	Indexed  int
	Updated  int
	Skipped  int
	Failed   int
	Examples int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads annotation files (tabular or JSON) and populates the
// database, tagging every example with the given partition (which may be
// empty). Files unchanged since their last ingestion are skipped.
func (s *Store) Ingest(ctx context.Context, paths []string, part types.Partition, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := filepath.Base(path)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE source_file = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		examples, err := convert.ReadExamples(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, path, examples, part, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		summary.Examples += len(examples)
		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d examples)\n", name, len(examples))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d examples)\n", name, len(examples))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d (%d examples)\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed, summary.Examples)

	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path string, examples []*types.Example, part types.Partition, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove the file's previous examples if updating.
	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM examples WHERE source_file = ?`, path); err != nil {
			return fmt.Errorf("deleting old examples: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO examples (id, docid, relation, part, source_file,
			sentence, token_count,
			subj_text, subj_type, subj_start, subj_end,
			obj_text, obj_type, obj_start, obj_end, tokens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range examples {
		exPart := e.Partition
		if part != "" {
			exPart = part
		}
		tokensJSON, err := json.Marshal(e.Tokens)
		if err != nil {
			return fmt.Errorf("encoding tokens for %s: %w", e.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			e.ID, e.DocID, string(e.Relation), string(exPart), path,
			e.Sentence(), len(e.Tokens),
			e.SubjText(), string(e.SubjType), e.Subj.Start, e.Subj.End,
			e.ObjText(), string(e.ObjType), e.Obj.Start, e.Obj.End,
			string(tokensJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting example %s: %w", e.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		path, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
