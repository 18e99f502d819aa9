package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

// ErrPluginsUnsupported is reported by Plugins > Load Plugin.
var ErrPluginsUnsupported = errors.New("plugins are not supported")

// dispatch performs a.
func (m *Model) dispatch(a Action) tea.Cmd {
	log.Debug().Str("action", string(a)).Msg("dispatch")
	if a != ActQuit {
		m.quitArmed = false
	}

	switch a {
	case ActNewTab:
		m.tabs.NewTab()
		m.setStatus("")
	case ActOpen:
		return m.openFilePicker()
	case ActSave:
		return m.save()
	case ActSaveAs:
		return m.promptSaveAs()
	case ActCloseTab:
		m.closeTab()
	case ActQuit:
		return m.quit()

	case ActCut, ActCopy, ActPaste:
		m.clipboardAction(a)
	case ActSelectAll:
		if tab := m.tabs.Current(); tab != nil {
			tab.Editor.SelectAll()
		}
	case ActUndo:
		if tab := m.tabs.Current(); tab != nil && !tab.Editor.Undo() {
			m.setStatus("Nothing to undo")
		}
	case ActRedo:
		if tab := m.tabs.Current(); tab != nil && !tab.Editor.Redo() {
			m.setStatus("Nothing to redo")
		}

	case ActFind:
		if m.tabs.Current() != nil {
			return m.openPrompt(promptFind, "Find: ", m.lastFind)
		}
	case ActFindNext:
		if m.lastFind == "" {
			return m.dispatch(ActFind)
		}
		m.findNext()

	case ActTabCount:
		m.setStatus(fmt.Sprintf("Open tabs: %d", m.tabs.Count()))
	case ActShowChanges:
		m.showChanges()
	case ActCodeCleaner:
		m.codeCleaner()
	case ActLoadPlugin:
		m.setError(ErrPluginsUnsupported)

	case ActRecordStart:
		m.startRecording()
	case ActRecordStop:
		m.stopRecording()
	case ActPlayMacro:
		return m.playMacro()

	case ActListTabs:
		m.setStatus("Open tabs: " + strings.Join(m.tabs.Titles(), ", "))
	case ActSwitchTab:
		return m.openTabPicker()
	case ActNextTab:
		m.tabs.Next()
	case ActPrevTab:
		m.tabs.Prev()

	case ActMenu:
		m.closeOverlays()
		m.menu.Open(0)
	case ActHelp:
		m.openHelp()
	}
	return nil
}

// save writes the current tab, asking for a path when it has none.
func (m *Model) save() tea.Cmd {
	path, err := m.tabs.Save()
	if errors.Is(err, ErrNoPath) {
		return m.promptSaveAs()
	}
	if err != nil {
		m.setError(err)
		return nil
	}
	if path == "" {
		return nil
	}
	log.Info().Str("path", path).Msg("saved")
	m.setStatus("Saved " + path)
	return m.touchRecentCmd(path)
}

func (m *Model) promptSaveAs() tea.Cmd {
	tab := m.tabs.Current()
	if tab == nil {
		return nil
	}
	value := tab.Path
	if value == "" {
		value = m.resolvePath(tab.Title + ".txt")
	}
	return m.openPrompt(promptSaveAs, "Save as: ", value)
}

func (m *Model) saveAs(path string) tea.Cmd {
	saved, err := m.tabs.SaveAs(m.resolvePath(path))
	if err != nil {
		m.setError(err)
		return nil
	}
	if saved == "" {
		return nil
	}
	log.Info().Str("path", saved).Msg("saved as")
	m.setStatus("Saved " + saved)
	return m.touchRecentCmd(saved)
}

func (m *Model) closeTab() {
	closed, ok := m.tabs.CloseCurrent()
	if !ok {
		return
	}
	if closed.Modified() {
		m.setStatus("Closed " + closed.Title + " (unsaved changes discarded)")
		return
	}
	m.setStatus("Closed " + closed.Title)
}

// quit asks for confirmation once while any tab has unsaved edits.
func (m *Model) quit() tea.Cmd {
	var dirty []string
	for _, tab := range m.tabs.All() {
		if tab.Modified() && !tab.Editor.ReadOnly {
			dirty = append(dirty, tab.Title)
		}
	}
	if len(dirty) > 0 && !m.quitArmed {
		m.quitArmed = true
		m.setStatus(fmt.Sprintf("Unsaved: %s. Quit again to discard.", strings.Join(dirty, ", ")))
		return nil
	}
	return m.saveAndQuit()
}

func (m *Model) clipboardAction(a Action) {
	tab := m.tabs.Current()
	if tab == nil {
		return
	}
	var err error
	switch a {
	case ActCut:
		_, err = tab.Editor.Cut()
	case ActCopy:
		_, err = tab.Editor.Copy()
	case ActPaste:
		_, err = tab.Editor.Paste()
	}
	if err != nil {
		m.setError(err)
	}
}

// findNext selects the next match of the last query in the current tab.
func (m *Model) findNext() {
	tab := m.tabs.Current()
	if tab == nil || m.lastFind == "" {
		return
	}
	if !tab.Editor.Find(m.lastFind) {
		m.setStatus(fmt.Sprintf("%q not found", m.lastFind))
		return
	}
	m.setStatus(fmt.Sprintf("%d matches for %q", tab.Editor.CountMatches(m.lastFind), m.lastFind))
}

// codeCleaner trims trailing whitespace in the current tab.
func (m *Model) codeCleaner() {
	tab := m.tabs.Current()
	if tab == nil {
		return
	}
	n := tab.Editor.TrimTrailingWhitespace()
	m.setStatus(fmt.Sprintf("Trimmed trailing whitespace on %d lines", n))
}
