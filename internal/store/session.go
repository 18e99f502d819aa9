package store

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// SessionTab is one file-backed tab remembered across runs.
type SessionTab struct {
	Path   string
	Row    int
	Col    int
	Active bool
}

// SaveSession replaces the remembered tabs with tabs, in order.
func (s *Store) SaveSession(tabs []SessionTab) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin session save: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM session_tabs"); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("clear session: %w", err)
	}
	for i, t := range tabs {
		active := 0
		if t.Active {
			active = 1
		}
		_, err := tx.Exec(
			"INSERT INTO session_tabs (position, path, row, col, active) VALUES (?, ?, ?, ?, ?)",
			i, t.Path, t.Row, t.Col, active,
		)
		if err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("save session tab %s: %w", t.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	log.Debug().Int("tabs", len(tabs)).Msg("session saved")
	return nil
}

// LoadSession returns the remembered tabs in their saved order.
func (s *Store) LoadSession() ([]SessionTab, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT path, row, col, active FROM session_tabs ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var tabs []SessionTab
	for rows.Next() {
		var t SessionTab
		var active int
		if err := rows.Scan(&t.Path, &t.Row, &t.Col, &active); err != nil {
			return nil, fmt.Errorf("scan session tab: %w", err)
		}
		t.Active = active != 0
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}
