// Package persist stores shrunk failure cases and interesting corpus
// inputs in a SQLite database, so failures can be replayed and turned
// into regression tests later.
package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// FailureCase is a saved test failure with everything needed for
// replay.
type FailureCase struct {
	// TestName identifies the property test that failed.
	TestName string
	// Seed is the RNG seed that produced the failure.
	Seed uint64
	// Input is the serialized shrunk counterexample.
	Input string
	// ErrorMessage is the failure message.
	ErrorMessage string
	// ShrinkSteps is the number of reductions applied.
	ShrinkSteps int
	// CreatedAt is when the failure was recorded.
	CreatedAt time.Time
}

// CorpusCase is an interesting input worth reusing in future runs.
type CorpusCase struct {
	Input     string
	Reason    string
	Tags      []string
	CreatedAt time.Time
}

// Store persists failures and corpus cases. Use ":memory:" as the path
// for an ephemeral store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open failure database: %w", err)
	}

	// SQLite serializes writers anyway, and a second pooled connection
	// to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS failures (
			test_name     TEXT    NOT NULL,
			seed          INTEGER NOT NULL,
			input         TEXT    NOT NULL,
			error_message TEXT    NOT NULL,
			shrink_steps  INTEGER NOT NULL,
			created_at    INTEGER NOT NULL,
			PRIMARY KEY (test_name, seed)
		);
		CREATE TABLE IF NOT EXISTS corpus (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			input      TEXT    NOT NULL,
			reason     TEXT    NOT NULL,
			tags       TEXT    NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveFailure inserts or replaces a failure case, keyed by test name
// and seed.
func (s *Store) SaveFailure(failure *FailureCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := failure.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO failures (test_name, seed, input, error_message, shrink_steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, failure.TestName, int64(failure.Seed), failure.Input, failure.ErrorMessage, failure.ShrinkSteps, createdAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save failure for %s: %w", failure.TestName, err)
	}
	return nil
}

// LoadFailures returns all saved failures for a test, oldest first.
func (s *Store) LoadFailures(testName string) ([]FailureCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT test_name, seed, input, error_message, shrink_steps, created_at
		FROM failures
		WHERE test_name = ?
		ORDER BY created_at
	`, testName)
	if err != nil {
		return nil, fmt.Errorf("failed to load failures for %s: %w", testName, err)
	}
	defer func() { _ = rows.Close() }()

	return scanFailureRows(rows)
}

// DeleteFailure removes the failure with the given seed.
func (s *Store) DeleteFailure(testName string, seed uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM failures WHERE test_name = ? AND seed = ?`, testName, int64(seed))
	if err != nil {
		return fmt.Errorf("failed to delete failure: %w", err)
	}
	return nil
}

// ListTests returns the names of tests with saved failures.
func (s *Store) ListTests() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT DISTINCT test_name FROM failures ORDER BY test_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tests []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		tests = append(tests, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tests, nil
}

// ClearTest removes every failure saved for a test.
func (s *Store) ClearTest(testName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM failures WHERE test_name = ?`, testName)
	if err != nil {
		return fmt.Errorf("failed to clear failures for %s: %w", testName, err)
	}
	return nil
}

// AddCorpusCase records an interesting input.
func (s *Store) AddCorpusCase(c *CorpusCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO corpus (input, reason, tags, created_at)
		VALUES (?, ?, ?, ?)
	`, c.Input, c.Reason, strings.Join(c.Tags, ","), createdAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to add corpus case: %w", err)
	}
	return nil
}

// LoadCorpus returns all corpus cases, oldest first.
func (s *Store) LoadCorpus() ([]CorpusCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT input, reason, tags, created_at FROM corpus ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cases []CorpusCase
	for rows.Next() {
		var c CorpusCase
		var tagsStr string
		var createdAt int64
		if err := rows.Scan(&c.Input, &c.Reason, &tagsStr, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if tagsStr != "" {
			c.Tags = strings.Split(tagsStr, ",")
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cases, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanFailureRows(rows *sql.Rows) ([]FailureCase, error) {
	var failures []FailureCase
	for rows.Next() {
		var f FailureCase
		var seed int64
		var createdAt int64
		if err := rows.Scan(&f.TestName, &seed, &f.Input, &f.ErrorMessage, &f.ShrinkSteps, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		f.Seed = uint64(seed)
		f.CreatedAt = time.Unix(createdAt, 0)
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return failures, nil
}
