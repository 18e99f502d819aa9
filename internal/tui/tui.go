// Package tui is the tabbed editor application: a menu bar, a tab bar, one
// editor per tab and a status line, wired together as a bubbletea model.
package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tabpad/internal/config"
	"github.com/xonecas/tabpad/internal/filesearch"
	"github.com/xonecas/tabpad/internal/highlight"
	"github.com/xonecas/tabpad/internal/store"
	"github.com/xonecas/tabpad/internal/tui/editor"
	"github.com/xonecas/tabpad/internal/tui/menu"
	"github.com/xonecas/tabpad/internal/tui/modal"
)

// Options configures a new Model.
type Options struct {
	Config    *config.Config
	Store     *store.Store     // nil disables the session and recent files
	WorkDir   string           // Root of the Open picker listing
	Files     []string         // Opened at startup, one tab each
	NoSession bool             // Skip restoring the previous session
	Clipboard editor.Clipboard // nil = system clipboard
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout

	cfg     *config.Config
	palette highlight.Palette
	styles  styles
	keys    KeyMap
	help    help.Model

	menu menu.Model
	tabs *Tabs

	// Overlays; at most one is open.
	picker   *modal.Model
	textView *modal.TextView
	prompt   *prompt

	macro    macro
	lastFind string

	status    string
	statusErr bool
	quitArmed bool // Set after a quit attempt with unsaved tabs

	store    *store.Store
	searcher *filesearch.Searcher
	workDir  string
}

// New creates the application model and opens the startup tabs: the files
// given, else the restored session, else one untitled tab.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := cfg.UI.SyntaxThemeOrDefault()
	palette := highlight.ThemePalette(theme)
	keys := DefaultKeyMap()

	searcher, err := filesearch.NewSearcher(opts.WorkDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", opts.WorkDir).Msg("file search disabled")
	}

	edColors := editorColors(palette, cfg.UI)
	newEditor := func() editor.Model {
		ed := editor.New()
		ed.ShowLineNumbers = cfg.UI.LineNumbers()
		ed.HighlightCurrentLine = cfg.UI.CurrentLine()
		ed.TabWidth = cfg.UI.TabWidthOrDefault()
		ed.SyntaxTheme = theme
		ed.Colors = edColors
		ed.Clipboard = opts.Clipboard
		return ed
	}

	m := Model{
		cfg:      cfg,
		palette:  palette,
		styles:   newStyles(palette),
		keys:     keys,
		help:     help.New(),
		menu:     menu.New(buildMenus(keys), menuColors(palette)),
		tabs:     NewTabs(newEditor),
		store:    opts.Store,
		searcher: searcher,
		workDir:  opts.WorkDir,
	}

	for _, path := range opts.Files {
		m.openPath(path)
	}
	if len(opts.Files) == 0 && !opts.NoSession && cfg.Session.RestoreOrDefault() {
		m.restoreSession()
	}
	if m.tabs.Count() == 0 {
		m.tabs.NewTab()
	}
	return m
}

// Init initializes the TUI (required by BubbleTea).
func (m Model) Init() tea.Cmd {
	return nil
}

// Tabs exposes the tab container.
func (m Model) Tabs() *Tabs { return m.tabs }

// Status returns the current status line message.
func (m Model) Status() string { return m.status }

// buildMenus lays out the menu bar. Every item carries the shortcut of its
// action from the key map.
func buildMenus(k KeyMap) []menu.Menu {
	item := func(label string, a Action) menu.Item {
		return menu.Item{Label: label, Action: string(a), Key: k.Binding(a).Help().Key}
	}
	return []menu.Menu{
		{Title: "File", Items: []menu.Item{
			item("New Tab", ActNewTab),
			item("Open...", ActOpen),
			item("Save", ActSave),
			item("Save As...", ActSaveAs),
			item("Close Tab", ActCloseTab),
			item("Quit", ActQuit),
		}},
		{Title: "Edit", Items: []menu.Item{
			item("Cut", ActCut),
			item("Copy", ActCopy),
			item("Paste", ActPaste),
			item("Select All", ActSelectAll),
			item("Undo", ActUndo),
			item("Redo", ActRedo),
		}},
		{Title: "Search", Items: []menu.Item{
			item("Find...", ActFind),
			item("Find Next", ActFindNext),
		}},
		{Title: "View", Items: []menu.Item{
			item("Show Tab Count", ActTabCount),
			item("Show Unsaved Changes", ActShowChanges),
		}},
		{Title: "Tools", Items: []menu.Item{
			item("Code Cleaner", ActCodeCleaner),
		}},
		{Title: "Plugins", Items: []menu.Item{
			item("Load Plugin...", ActLoadPlugin),
		}},
		{Title: "Macros", Items: []menu.Item{
			item("Start Recording", ActRecordStart),
			item("Stop Recording", ActRecordStop),
			item("Play Macro", ActPlayMacro),
		}},
		{Title: "Windows", Items: []menu.Item{
			item("List All Tabs", ActListTabs),
			item("Switch Tab...", ActSwitchTab),
			item("Next Tab", ActNextTab),
			item("Previous Tab", ActPrevTab),
		}},
	}
}

// setStatus shows an informational message on the status line.
func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// setError shows err on the status line and logs it.
func (m *Model) setError(err error) {
	log.Error().Err(err).Msg("action failed")
	m.status = "Error: " + err.Error()
	m.statusErr = true
}

// updateComponentSizes pushes layout dimensions to the tabs.
func (m *Model) updateComponentSizes() {
	m.tabs.Resize(m.layout.editor.Dx(), m.layout.editor.Dy())
}
