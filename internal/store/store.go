// Package store persists traces, risks, and LLM request events in a single
// SQLite database. All tables are append-oriented; a shared sequence counter
// gives every record a global position.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TraceRepo returns the trace repository backed by this store.
func (s *Store) TraceRepo() *TraceRepo {
	return &TraceRepo{db: s.db, seq: s.seq}
}

// RiskRepo returns the risk repository backed by this store.
func (s *Store) RiskRepo() *RiskRepo {
	return &RiskRepo{db: s.db, seq: s.seq}
}

// LLMEventRepo returns the LLM event repository backed by this store.
func (s *Store) LLMEventRepo() *LLMEventRepo {
	return &LLMEventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS traces (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			level TEXT NOT NULL,
			interaction TEXT NOT NULL,
			state TEXT NOT NULL,
			intent TEXT NOT NULL,
			content TEXT NOT NULL,
			ai_involvement REAL NOT NULL,
			blocked INTEGER NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_traces_session ON traces (session_id, timestamp, seq)`,

		`CREATE TABLE IF NOT EXISTS risks (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			level TEXT NOT NULL,
			dimension TEXT NOT NULL,
			description TEXT NOT NULL,
			evidence TEXT NOT NULL DEFAULT '[]',
			recommendations TEXT NOT NULL DEFAULT '[]',
			resolved INTEGER NOT NULL DEFAULT 0,
			detected_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_risks_session ON risks (session_id, seq)`,

		`CREATE TABLE IF NOT EXISTS llm_events (
			seq INTEGER PRIMARY KEY,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MENTAT_DB environment variable
// 2. $XDG_DATA_HOME/mentat/mentat.db
// 3. ~/.local/share/mentat/mentat.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MENTAT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mentat", "mentat.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
