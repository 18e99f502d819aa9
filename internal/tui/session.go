package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tabpad/internal/store"
)

// openPath opens path in a new tab and records it as recent. Failures go to
// the status line.
func (m *Model) openPath(path string) tea.Cmd {
	tab, err := m.tabs.OpenFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("open failed")
		m.setError(err)
		return nil
	}
	log.Info().Str("path", tab.Path).Int("lines", tab.Editor.LineCount()).Msg("opened")
	m.setStatus("Opened " + tab.Path)
	return m.touchRecentCmd(tab.Path)
}

// restoreSession reopens the file-backed tabs of the previous run. Files
// that no longer load are skipped and dropped from the recent list.
func (m *Model) restoreSession() {
	saved, err := m.store.LoadSession()
	if err != nil {
		log.Warn().Err(err).Msg("session restore failed")
		return
	}
	active := -1
	for _, st := range saved {
		tab, err := m.tabs.OpenFile(st.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", st.Path).Msg("skipping session tab")
			m.store.ForgetRecent(st.Path)
			continue
		}
		tab.Editor.SetCursor(st.Row, st.Col)
		if st.Active {
			active = m.tabs.CurrentIndex()
		}
	}
	if active >= 0 {
		m.tabs.Select(active)
	}
	log.Debug().Int("tabs", m.tabs.Count()).Msg("session restored")
}

// sessionTabs snapshots the file-backed tabs for the store.
func (m Model) sessionTabs() []store.SessionTab {
	cur := m.tabs.Current()
	var out []store.SessionTab
	for _, tab := range m.tabs.All() {
		if tab.Path == "" {
			continue
		}
		row, col := tab.Editor.Cursor()
		out = append(out, store.SessionTab{
			Path:   tab.Path,
			Row:    row,
			Col:    col,
			Active: tab == cur,
		})
	}
	return out
}

// touchRecentCmd records path in the recent list off the update loop.
func (m Model) touchRecentCmd(path string) tea.Cmd {
	if m.store == nil || path == "" {
		return nil
	}
	s := m.store
	return func() tea.Msg {
		s.TouchRecent(path)
		return nil
	}
}

// saveAndQuit persists the session, then quits.
func (m Model) saveAndQuit() tea.Cmd {
	s := m.store
	tabs := m.sessionTabs()
	return func() tea.Msg {
		if err := s.SaveSession(tabs); err != nil {
			log.Warn().Err(err).Msg("session save failed")
		}
		return tea.Quit()
	}
}
