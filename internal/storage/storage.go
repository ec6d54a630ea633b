// Package storage provides the persistence collaborator shared by all
// studydesk stores: a synchronous string key-value interface backed by a
// single SQLite database. Each store owns one key and serializes its whole
// state into it on every mutation.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// KV is the contract the stores depend on. Get reports whether the key
// exists; Set never fails from the caller's point of view — write errors
// are logged and swallowed, leaving in-memory state authoritative.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// A nil logger disables diagnostics.
func New(dbPath string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:", nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS blobs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the value stored under key, or ok=false if the key has never
// been written.
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.log.Warn("storage get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set writes value under key. Failures (quota, closed db) are logged and
// swallowed; the most recent edit is lost on next load in that case.
func (s *Store) Set(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		s.log.Warn("storage set failed", zap.String("key", key), zap.Error(err))
	}
}

// DefaultDBPath returns ~/.config/studydesk/studydesk.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studydesk", "studydesk.db"), nil
}
