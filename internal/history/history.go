// Package history records drill sessions in a local SQLite database. The CSV
// progress file remains the source of truth for the pool; this store keeps
// what that file cannot: per-session and per-answer history for the stats
// views. History failures never block drilling.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Recorder is the write side the UI drives. Screens take a Recorder so tests
// can substitute a mock.
type Recorder interface {
	SessionStarted(ctx context.Context, s SessionStart) error
	SessionEnded(ctx context.Context, s SessionEnd) error
	CardAnswered(ctx context.Context, a Answer) error
	LLMRequestLogged(ctx context.Context, r LLMRequest) error
}

// SessionStart opens a session row when the card screen comes up.
type SessionStart struct {
	ID        string
	StartedAt time.Time
	PoolStart int
}

// SessionEnd closes a session row with its final counters.
type SessionEnd struct {
	ID         string
	EndedAt    time.Time
	CardsShown int
	CardsKnown int
	PoolEnd    int
}

// Answer is one revealed card and the learner's verdict on it.
type Answer struct {
	SessionID  string
	Source     string
	Target     string
	Known      bool
	AnsweredAt time.Time
}

// LLMRequest records one example-sentence API call.
type LLMRequest struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestedAt  time.Time
}

// Store is the SQLite-backed Recorder plus the read-side queries.
type Store struct {
	db *sql.DB
}

var _ Recorder = (*Store)(nil)

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and creates the schema.
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
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB { return s.db }

// applyPragmas configures SQLite for single-user performance.
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
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP,
			cards_shown INTEGER NOT NULL DEFAULT 0,
			cards_known INTEGER NOT NULL DEFAULT 0,
			pool_start INTEGER NOT NULL DEFAULT 0,
			pool_end INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			known INTEGER NOT NULL,
			answered_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS llm_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			requested_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath resolves the history database file in priority order:
// 1. ORDKORT_DB environment variable
// 2. $XDG_DATA_HOME/ordkort/history.db
// 3. ~/.local/share/ordkort/history.db
func DefaultPath() (string, error) {
	if p := os.Getenv("ORDKORT_DB"); p != "" {
		return p, ensureDir(p)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(dataHome, "ordkort", "history.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func (s *Store) SessionStarted(ctx context.Context, in SessionStart) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, pool_start) VALUES (?, ?, ?)`,
		in.ID, in.StartedAt.UTC(), in.PoolStart)
	return err
}

func (s *Store) SessionEnded(ctx context.Context, in SessionEnd) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, cards_shown = ?, cards_known = ?, pool_end = ?
		 WHERE id = ?`,
		in.EndedAt.UTC(), in.CardsShown, in.CardsKnown, in.PoolEnd, in.ID)
	return err
}

func (s *Store) CardAnswered(ctx context.Context, in Answer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, source, target, known, answered_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.SessionID, in.Source, in.Target, in.Known, in.AnsweredAt.UTC())
	return err
}

func (s *Store) LLMRequestLogged(ctx context.Context, in LLMRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, error, requested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Provider, in.Model, in.Purpose, in.InputTokens, in.OutputTokens,
		in.LatencyMs, in.Success, in.ErrorMessage, in.RequestedAt.UTC())
	return err
}

// Wipe deletes all recorded history. Used by `ordkort reset --history`.
func (s *Store) Wipe(ctx context.Context) error {
	for _, table := range []string{"answers", "llm_requests", "sessions"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}
	return nil
}
