// Package store persists the application state as a JSON blob in a local
// SQLite key-value table, versioned by key name.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is the SQLite-backed key-value state store. A single process owns
// the database exclusively; saves overwrite the blob under its key.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save overwrites the blob stored under key.
func (s *Store) Save(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO states (key, value, updated_at) VALUES (?, ?, ?)`,
		key, string(value), now)
	if err != nil {
		return fmt.Errorf("saving state %q: %w", key, err)
	}
	return nil
}

// Load returns the blob stored under key. A missing key is not an error:
// the second return reports whether anything was found.
func (s *Store) Load(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM states WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading state %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Delete removes the blob stored under key, if any.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM states WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}
