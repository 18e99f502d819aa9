package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// macro records the key presses that reach the editor and replays them.
type macro struct {
	recording bool
	buf       []tea.KeyPressMsg // Keys captured by the current recording
	keys      []tea.KeyPressMsg // Last finished recording
}

func (mc *macro) start() {
	mc.recording = true
	mc.buf = nil
}

// stop ends the recording and keeps it for playback. It returns the number
// of keys recorded.
func (mc *macro) stop() int {
	mc.recording = false
	mc.keys = mc.buf
	mc.buf = nil
	return len(mc.keys)
}

func (mc *macro) record(msg tea.KeyPressMsg) {
	if mc.recording {
		mc.buf = append(mc.buf, msg)
	}
}

func (m *Model) startRecording() {
	if m.macro.recording {
		m.setStatus("Already recording")
		return
	}
	m.macro.start()
	m.setStatus("Recording macro")
}

func (m *Model) stopRecording() {
	if !m.macro.recording {
		m.setStatus("Not recording")
		return
	}
	n := m.macro.stop()
	m.setStatus(fmt.Sprintf("Recorded %d keys", n))
}

// playMacro feeds the last recording through the current editor.
func (m *Model) playMacro() tea.Cmd {
	if m.macro.recording {
		m.setStatus("Stop recording before playing")
		return nil
	}
	tab := m.tabs.Current()
	if tab == nil {
		return nil
	}
	if len(m.macro.keys) == 0 {
		m.setStatus("No macro recorded")
		return nil
	}
	var cmds []tea.Cmd
	for _, k := range m.macro.keys {
		var cmd tea.Cmd
		tab.Editor, cmd = tab.Editor.Update(k)
		cmds = append(cmds, cmd)
	}
	m.setStatus(fmt.Sprintf("Played %d keys", len(m.macro.keys)))
	return tea.Batch(cmds...)
}
