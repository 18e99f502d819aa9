package tui

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/sahilm/fuzzy"
	"github.com/xonecas/tabpad/internal/filesearch"
	"github.com/xonecas/tabpad/internal/tui/modal"
)

const (
	pickerOpen      = "open"
	pickerSwitchTab = "switch-tab"

	maxListedFiles = 5000
	maxPickerItems = 50
)

// closeOverlays drops every open overlay and closes the menu.
func (m *Model) closeOverlays() {
	m.picker = nil
	m.textView = nil
	m.prompt = nil
	m.menu.Close()
}

// openFilePicker lists openable files under the working directory. Recent
// files come first; a typed path that matches nothing is opened as is.
func (m *Model) openFilePicker() tea.Cmd {
	m.closeOverlays()

	var recent []modal.Item
	seen := make(map[string]bool)
	for _, p := range m.store.Recent() {
		seen[p] = true
		recent = append(recent, modal.Item{Name: m.displayPath(p), Desc: "recent", Value: p})
	}

	var listed []modal.Item
	if m.searcher != nil {
		paths, err := m.searcher.List(context.Background(), filesearch.Options{
			RootDir:    m.workDir,
			Patterns:   m.cfg.Files.Patterns(),
			MaxResults: maxListedFiles,
		})
		if err != nil {
			log.Warn().Err(err).Str("dir", m.workDir).Msg("file listing failed")
		}
		for _, rel := range paths {
			abs := filepath.Join(m.workDir, filepath.FromSlash(rel))
			if seen[abs] {
				continue
			}
			listed = append(listed, modal.Item{Name: rel, Value: abs})
		}
	}

	searchFn := func(query string) []modal.Item {
		var items []modal.Item
		items = append(items, rankItems(query, recent)...)
		items = append(items, rankItems(query, listed)...)
		if len(items) > maxPickerItems {
			items = items[:maxPickerItems]
		}
		return items
	}
	md := modal.New(pickerOpen, "Open", searchFn, modalColors(m.palette))
	m.picker = &md
	return nil
}

// rankItems orders items by the fuzzy score of their names.
func rankItems(query string, items []modal.Item) []modal.Item {
	if query == "" {
		return items
	}
	byName := make(map[string]modal.Item, len(items))
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
		byName[it.Name] = it
	}
	ranked := filesearch.Rank(query, names, 0)
	out := make([]modal.Item, len(ranked))
	for i, name := range ranked {
		out[i] = byName[name]
	}
	return out
}

// displayPath shows p relative to the working directory when it lies below it.
func (m Model) displayPath(p string) string {
	if m.workDir == "" {
		return p
	}
	rel, err := filepath.Rel(m.workDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

// openTabPicker fuzzy-filters the open tabs by title.
func (m *Model) openTabPicker() tea.Cmd {
	m.closeOverlays()
	all := m.tabs.All()
	items := make([]modal.Item, len(all))
	titles := make([]string, len(all))
	for i, tab := range all {
		titles[i] = tab.Title
		items[i] = modal.Item{Name: tab.Title, Desc: m.displayPath(tab.Path), Value: strconv.Itoa(i)}
	}
	searchFn := func(query string) []modal.Item {
		if query == "" {
			return items
		}
		var out []modal.Item
		for _, match := range fuzzy.Find(query, titles) {
			out = append(out, items[match.Index])
		}
		return out
	}
	md := modal.New(pickerSwitchTab, "Switch Tab", searchFn, modalColors(m.palette))
	m.picker = &md
	return nil
}

// updatePicker routes a message to the open picker and performs its result.
func (m *Model) updatePicker(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.picker == nil {
		return *m, nil, false
	}
	id := m.picker.ID()
	action, cmd := m.picker.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.picker = nil
		return *m, nil, true
	case modal.ActionSelect:
		m.picker = nil
		return *m, m.pickerSelect(id, a.Item.Value), true
	case modal.ActionSubmit:
		m.picker = nil
		if id == pickerOpen && strings.TrimSpace(a.Query) != "" {
			return *m, m.openPath(m.resolvePath(strings.TrimSpace(a.Query))), true
		}
		return *m, nil, true
	}
	if cmd != nil {
		return *m, cmd, true
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg, tea.PasteMsg:
		return *m, nil, true
	}
	return *m, nil, false
}

func (m *Model) pickerSelect(id, value string) tea.Cmd {
	switch id {
	case pickerOpen:
		return m.openPath(value)
	case pickerSwitchTab:
		if i, err := strconv.Atoi(value); err == nil {
			m.tabs.Select(i)
		}
	}
	return nil
}

// resolvePath makes a typed path relative to the working directory.
func (m Model) resolvePath(p string) string {
	if filepath.IsAbs(p) || m.workDir == "" {
		return p
	}
	return filepath.Join(m.workDir, p)
}

// openHelp shows the key reference.
func (m *Model) openHelp() {
	m.closeOverlays()
	var b strings.Builder
	for _, ab := range m.keys.bindings() {
		h := ab.binding.Help()
		if len(ab.binding.Keys()) == 0 {
			continue
		}
		b.WriteString(padKey(strings.Join(ab.binding.Keys(), ", ")))
		b.WriteString(h.Desc)
		b.WriteByte('\n')
	}
	for _, row := range editorKeyHelp {
		b.WriteString(padKey(row[0]))
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	tv := modal.NewTextView("Keys", strings.TrimSuffix(b.String(), "\n"), modalColors(m.palette))
	m.textView = &tv
}

var editorKeyHelp = [][2]string{
	{"alt+letter", "open menu"},
	{"tab", "indent like the line above"},
	{"shift+arrows", "extend selection"},
	{"home/end", "line start/end"},
	{"ctrl+home/ctrl+end", "file start/end"},
	{"pgup/pgdown", "page scroll"},
}

func padKey(k string) string {
	const w = 24
	if len(k) >= w {
		return k + " "
	}
	return k + strings.Repeat(" ", w-len(k))
}

// updateTextView routes a message to the open text view.
func (m *Model) updateTextView(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.textView == nil {
		return *m, nil, false
	}
	action, cmd := m.textView.HandleMsg(msg)
	if _, ok := action.(modal.ActionClose); ok {
		m.textView = nil
		return *m, nil, true
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg:
		return *m, cmd, true
	}
	return *m, cmd, false
}
