// Package history records validation runs in a local SQLite database.
//
// The integrity engine itself is stateless — every report is a pure
// function of the corpus snapshot. History is a store-layer convenience
// recorded after the fact, so authors can see whether a corpus is
// trending cleaner without re-running old snapshots.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level var for deterministic timestamps in tests.
var timeNow = time.Now

// Run is one recorded engine invocation.
type Run struct {
	ID        string `json:"id"`
	Operation string `json:"operation"` // check | validate | link | unlink
	// Target is the spec identifier for single-record operations,
	// empty for corpus-wide ones.
	Target   string `json:"target,omitempty"`
	Passed   bool   `json:"passed"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	// Findings is the JSON rendering of the structured result.
	Findings  string `json:"findings,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Config holds history store configuration.
type Config struct {
	DataDir string
	// Keep bounds how many runs Prune retains. Zero means keep all.
	Keep int
}

// DefaultConfig stores history under ~/.leanspec.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".leanspec"), Keep: 500}
}

// Store is the validation-run log backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// Open creates the data directory if needed, opens SQLite in WAL mode,
// and runs migrations.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			operation  TEXT NOT NULL,
			target     TEXT NOT NULL DEFAULT '',
			passed     INTEGER NOT NULL,
			errors     INTEGER NOT NULL DEFAULT 0,
			warnings   INTEGER NOT NULL DEFAULT 0,
			findings   TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one run. A missing ID gets a fresh UUID; a missing
// timestamp gets the current time. The amended run is returned.
func (s *Store) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == "" {
		run.CreatedAt = timeNow().UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, operation, target, passed, errors, warnings, findings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Operation, run.Target, boolToInt(run.Passed),
		run.Errors, run.Warnings, run.Findings, run.CreatedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("history: record run: %w", err)
	}
	return run, nil
}

// RecordResult marshals a structured operation result and records it.
// Best-effort: a result that fails to marshal is stored without findings.
func (s *Store) RecordResult(operation, target string, passed bool, errors, warnings int, result any) (Run, error) {
	findings := ""
	if data, err := json.Marshal(result); err == nil {
		findings = string(data)
	}
	return s.Record(Run{
		Operation: operation,
		Target:    target,
		Passed:    passed,
		Errors:    errors,
		Warnings:  warnings,
		Findings:  findings,
	})
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, operation, target, passed, errors, warnings, findings, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var passed int
		if err := rows.Scan(&r.ID, &r.Operation, &r.Target, &passed,
			&r.Errors, &r.Warnings, &r.Findings, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.Passed = passed != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Prune deletes all but the newest cfg.Keep runs.
func (s *Store) Prune() error {
	if s.cfg.Keep <= 0 {
		return nil
	}
	_, err := s.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?
		)`, s.cfg.Keep)
	if err != nil {
		return fmt.Errorf("history: prune: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
