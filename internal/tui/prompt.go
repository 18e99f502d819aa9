package tui

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

type promptKind int

const (
	promptSaveAs promptKind = iota
	promptFind
)

// prompt is a one-line input shown in place of the status line.
type prompt struct {
	kind  promptKind
	input textinput.Model
}

func newPrompt(kind promptKind, label, value string, width int) (*prompt, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = label
	ti.SetValue(value)
	ti.CursorEnd()
	ti.SetWidth(max(1, width-len(label)-1))
	cmd := ti.Focus()
	return &prompt{kind: kind, input: ti}, cmd
}

// openPrompt replaces any overlay with a prompt.
func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	m.closeOverlays()
	var cmd tea.Cmd
	m.prompt, cmd = newPrompt(kind, label, value, m.width)
	return cmd
}

// updatePrompt routes a message to the open prompt. Enter submits and esc
// cancels; everything else edits the input.
func (m *Model) updatePrompt(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.prompt == nil {
		return *m, nil, false
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.Keystroke() {
		case "esc":
			m.prompt = nil
			m.setStatus("")
			return *m, nil, true
		case "enter":
			p := m.prompt
			m.prompt = nil
			return *m, m.submitPrompt(p.kind, p.input.Value()), true
		}
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.PasteMsg:
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return *m, cmd, true
	case tea.MouseMsg:
		return *m, nil, true
	}
	return *m, nil, false
}

func (m *Model) submitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptSaveAs:
		value = strings.TrimSpace(value)
		if value == "" {
			m.setError(errors.New("no file name given"))
			return nil
		}
		return m.saveAs(value)
	case promptFind:
		if value == "" {
			return nil
		}
		m.lastFind = value
		m.findNext()
	}
	return nil
}
