package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xonecas/tabpad/internal/highlight"
	"github.com/xonecas/tabpad/internal/textfile"
	"github.com/xonecas/tabpad/internal/tui/editor"
)

// ErrNoPath is returned when saving a tab that was never given a path.
var ErrNoPath = errors.New("tab has no file path")

// Tab is one open document.
type Tab struct {
	Editor editor.Model
	Title  string
	Path   string // Absolute path, empty for untitled and diff tabs
}

// Modified reports whether the tab has unsaved edits.
func (t *Tab) Modified() bool { return t.Editor.Modified() }

// Tabs is the ordered tab container. It owns the editors and tracks which
// tab is current.
type Tabs struct {
	tabs      []*Tab
	current   int
	untitled  int
	newEditor func() editor.Model
	w, h      int // Editor area size applied to new tabs
}

// NewTabs creates an empty container. newEditor builds a configured editor
// for every new tab.
func NewTabs(newEditor func() editor.Model) *Tabs {
	return &Tabs{newEditor: newEditor}
}

// Count returns the number of open tabs.
func (t *Tabs) Count() int { return len(t.tabs) }

// Titles returns the tab titles in order.
func (t *Tabs) Titles() []string {
	out := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		out[i] = tab.Title
	}
	return out
}

// All returns the open tabs in order.
func (t *Tabs) All() []*Tab { return t.tabs }

// Current returns the current tab, or nil when none is open.
func (t *Tabs) Current() *Tab {
	if len(t.tabs) == 0 {
		return nil
	}
	return t.tabs[t.current]
}

// CurrentIndex returns the index of the current tab, or -1.
func (t *Tabs) CurrentIndex() int {
	if len(t.tabs) == 0 {
		return -1
	}
	return t.current
}

// NewTab appends an untitled tab and makes it current.
func (t *Tabs) NewTab() *Tab {
	t.untitled++
	return t.add(&Tab{
		Editor: t.newEditor(),
		Title:  fmt.Sprintf("new %d", t.untitled),
	})
}

// OpenFile reads path into a new tab titled with its base name and makes it
// current. A file that is already open still gets a new tab.
func (t *Tabs) OpenFile(path string) (*Tab, error) {
	abs, err := textfile.Abs(path)
	if err != nil {
		return nil, err
	}
	content, err := textfile.Load(abs)
	if err != nil {
		return nil, err
	}
	ed := t.newEditor()
	ed.Language = highlight.DetectLanguage(abs)
	ed.SetValue(content)
	return t.add(&Tab{
		Editor: ed,
		Title:  filepath.Base(abs),
		Path:   abs,
	}), nil
}

// AddReadOnly appends a read-only tab holding content, e.g. a diff.
func (t *Tabs) AddReadOnly(title, content, language string) *Tab {
	ed := t.newEditor()
	ed.ReadOnly = true
	ed.Language = language
	ed.SetValue(content)
	return t.add(&Tab{Editor: ed, Title: title})
}

func (t *Tabs) add(tab *Tab) *Tab {
	if cur := t.Current(); cur != nil {
		cur.Editor.Blur()
	}
	tab.Editor.SetWidth(t.w)
	tab.Editor.SetHeight(t.h)
	t.tabs = append(t.tabs, tab)
	t.current = len(t.tabs) - 1
	tab.Editor.Focus()
	return tab
}

// CloseCurrent removes the current tab and returns it. Focus moves to the tab
// now at the same index, or to the previous one. With no tabs it does nothing.
func (t *Tabs) CloseCurrent() (*Tab, bool) {
	if len(t.tabs) == 0 {
		return nil, false
	}
	closed := t.tabs[t.current]
	closed.Editor.Blur()
	t.tabs = append(t.tabs[:t.current], t.tabs[t.current+1:]...)
	if t.current >= len(t.tabs) {
		t.current = max(0, len(t.tabs)-1)
	}
	if cur := t.Current(); cur != nil {
		cur.Editor.Focus()
	}
	return closed, true
}

// Select makes tab i current.
func (t *Tabs) Select(i int) bool {
	if i < 0 || i >= len(t.tabs) {
		return false
	}
	t.tabs[t.current].Editor.Blur()
	t.current = i
	t.tabs[i].Editor.Focus()
	return true
}

// Next moves to the following tab, wrapping around.
func (t *Tabs) Next() {
	if n := len(t.tabs); n > 1 {
		t.Select((t.current + 1) % n)
	}
}

// Prev moves to the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	if n := len(t.tabs); n > 1 {
		t.Select((t.current - 1 + n) % n)
	}
}

// Save writes the current tab to its path.
func (t *Tabs) Save() (string, error) {
	tab := t.Current()
	if tab == nil {
		return "", nil
	}
	if tab.Path == "" {
		return "", ErrNoPath
	}
	if err := textfile.Save(tab.Path, tab.Editor.Value()); err != nil {
		return "", err
	}
	tab.Editor.MarkSaved()
	return tab.Path, nil
}

// SaveAs writes the current tab to path, then retitles it and records the
// path.
func (t *Tabs) SaveAs(path string) (string, error) {
	tab := t.Current()
	if tab == nil {
		return "", nil
	}
	abs, err := textfile.Abs(path)
	if err != nil {
		return "", err
	}
	if err := textfile.Save(abs, tab.Editor.Value()); err != nil {
		return "", err
	}
	tab.Path = abs
	tab.Title = filepath.Base(abs)
	tab.Editor.ReadOnly = false
	tab.Editor.Language = highlight.DetectLanguage(abs)
	tab.Editor.MarkSaved()
	return abs, nil
}

// Resize applies the editor area size to every tab.
func (t *Tabs) Resize(w, h int) {
	t.w, t.h = w, h
	for _, tab := range t.tabs {
		tab.Editor.SetWidth(w)
		tab.Editor.SetHeight(h)
	}
}
