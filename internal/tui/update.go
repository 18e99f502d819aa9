package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update routes a message to the first layer that wants it: the prompt, an
// overlay, the open menu, the key map and finally the current editor.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if mdl, cmd, handled := m.updatePrompt(msg); handled {
		return mdl, cmd
	}
	if mdl, cmd, handled := m.updatePicker(msg); handled {
		return mdl, cmd
	}
	if mdl, cmd, handled := m.updateTextView(msg); handled {
		return mdl, cmd
	}

	switch msg := msg.(type) {

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	// -- Paste (clipboard read or bracketed paste) ---------------------------
	case tea.ClipboardMsg:
		m.insertPaste(msg.String())
		return m, nil
	case tea.PasteMsg:
		m.insertPaste(msg.Content)
		return m, nil
	}
	return m, nil
}

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height)
	m.updateComponentSizes()
	if m.prompt != nil {
		m.prompt.input.SetWidth(max(1, m.width-len(m.prompt.input.Prompt)-1))
	}
}

// handleKeyPress resolves a key through the menu, then the key map, and
// hands anything left to the current editor.
func (m Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.menu.IsOpen() {
		if action, _ := m.menu.HandleKey(msg); action != "" {
			return m, m.dispatch(Action(action))
		}
		return m, nil
	}
	if action := m.keys.Lookup(msg); action != "" {
		return m, m.dispatch(action)
	}
	if i := m.menuHotkey(msg); i >= 0 {
		m.closeOverlays()
		m.menu.Open(i)
		return m, nil
	}

	m.quitArmed = false
	tab := m.tabs.Current()
	if tab == nil {
		return m, nil
	}
	m.macro.record(msg)
	var cmd tea.Cmd
	tab.Editor, cmd = tab.Editor.Update(msg)
	return m, cmd
}

// insertPaste inserts pasted text into the current editor.
func (m *Model) insertPaste(text string) {
	tab := m.tabs.Current()
	if tab == nil || text == "" {
		return
	}
	tab.Editor.InsertText(text)
}

// menuHotkey returns the menu an alt+letter press opens, or -1.
func (m Model) menuHotkey(msg tea.KeyPressMsg) int {
	k, ok := strings.CutPrefix(msg.Keystroke(), "alt+")
	if !ok {
		return -1
	}
	if r := []rune(k); len(r) == 1 {
		return m.menu.Hotkey(r[0])
	}
	return -1
}
