package editor

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// Clipboard is where Cut, Copy and Paste exchange text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// MemoryClipboard keeps text in process only.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// systemClipboard talks to the OS clipboard and falls back to an in-process
// register when no clipboard utility is available (headless, SSH).
type systemClipboard struct {
	register MemoryClipboard
}

var defaultClipboard = &systemClipboard{}

func (c *systemClipboard) ReadAll() (string, error) {
	if !clipboard.Unsupported {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, nil
		}
		log.Debug().Err(err).Msg("system clipboard read failed, using register")
	}
	return c.register.ReadAll()
}

func (c *systemClipboard) WriteAll(text string) error {
	_ = c.register.WriteAll(text)
	if clipboard.Unsupported {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Debug().Err(err).Msg("system clipboard write failed, kept in register")
	}
	return nil
}

func (m Model) clipboard() Clipboard {
	if m.Clipboard != nil {
		return m.Clipboard
	}
	return defaultClipboard
}

// Copy puts the selection on the clipboard. It reports false when nothing
// is selected.
func (m *Model) Copy() (bool, error) {
	if !m.HasSelection() {
		return false, nil
	}
	if err := m.clipboard().WriteAll(m.SelectedText()); err != nil {
		return false, err
	}
	return true, nil
}

// Cut copies the selection and removes it from the buffer.
func (m *Model) Cut() (bool, error) {
	if m.ReadOnly {
		return false, nil
	}
	ok, err := m.Copy()
	if !ok || err != nil {
		return ok, err
	}
	return m.DeleteSelection(), nil
}

// Paste inserts the clipboard contents at the cursor, replacing the selection.
func (m *Model) Paste() (bool, error) {
	if m.ReadOnly {
		return false, nil
	}
	text, err := m.clipboard().ReadAll()
	if err != nil {
		return false, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return false, nil
	}
	m.InsertText(text)
	return true, nil
}
