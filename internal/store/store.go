// Package store persists editor session state (open tabs, recent files) in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS session_tabs (
	position  INTEGER PRIMARY KEY,
	path      TEXT NOT NULL,
	row       INTEGER NOT NULL DEFAULT 0,
	col       INTEGER NOT NULL DEFAULT 0,
	active    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recent_files (
	path     TEXT PRIMARY KEY,
	opened   INTEGER NOT NULL -- monotonically increasing sequence
);

CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_files(opened);
`

// Store is a SQLite-backed session store. All methods are safe on a nil
// receiver, which behaves as an empty store that discards writes.
type Store struct {
	mu          sync.Mutex
	db          *sql.DB
	recentLimit int
}

// Open creates or opens a store at dbPath. recentLimit caps the number of
// remembered recent files.
func Open(dbPath string, recentLimit int) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Store{db: db, recentLimit: recentLimit}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// --- Recent files ---

// TouchRecent records path as opened now and trims the list to the limit.
func (s *Store) TouchRecent(path string) {
	if s == nil || path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO recent_files (path, opened)
			VALUES (?, (SELECT COALESCE(MAX(opened), 0) + 1 FROM recent_files))`,
		path,
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to record recent file")
		return
	}
	_, err = s.db.Exec(
		`DELETE FROM recent_files WHERE path NOT IN
			(SELECT path FROM recent_files ORDER BY opened DESC LIMIT ?)`,
		s.recentLimit,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to trim recent files")
	}
}

// Recent returns remembered paths, most recent first.
func (s *Store) Recent() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT path FROM recent_files ORDER BY opened DESC LIMIT ?", s.recentLimit)
	if err != nil {
		log.Warn().Err(err).Msg("failed to query recent files")
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ForgetRecent drops path from the recent list, e.g. after it failed to open.
func (s *Store) ForgetRecent(path string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM recent_files WHERE path = ?", path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to forget recent file")
	}
}
