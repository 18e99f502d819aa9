package editor

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update handles navigation, editing and mouse input. Mouse coordinates are
// expected relative to the editor's top-left corner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.focus {
			m.handleKey(msg)
		}

	case tea.PasteMsg:
		if m.focus {
			m.InsertText(strings.ReplaceAll(msg.Content, "\r\n", "\n"))
		}

	case tea.MouseClickMsg:
		if !m.focus || msg.Button != tea.MouseLeft {
			break
		}
		p := m.screenToPos(msg.X, msg.Y)
		m.dragging = true
		m.sel = &selection{anchor: p, active: p}
		m.row, m.col = p.row, p.col
		m.hist.breakGroup()
		m.clampCursor()

	case tea.MouseMotionMsg:
		if !m.focus || !m.dragging {
			break
		}
		p := m.screenToPos(msg.X, msg.Y)
		if m.sel == nil {
			m.sel = &selection{anchor: pos{m.row, m.col}}
		}
		m.sel.active = p
		m.row, m.col = p.row, p.col
		m.clampCursor()
		m.clampScroll()

	case tea.MouseReleaseMsg:
		if !m.focus {
			break
		}
		m.dragging = false
		if m.sel != nil && m.sel.empty() {
			m.ClearSelection()
		}

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scroll -= 3
		case tea.MouseWheelDown:
			m.scroll += 3
		}
		m.clampScrollBounds()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	switch msg.Keystroke() {
	// --- Shift+navigation: extend selection ---
	case "shift+up":
		m.startOrExtendSelection()
		m.row--
		m.clampCursor()
		m.updateSelectionActive()
	case "shift+down":
		m.startOrExtendSelection()
		m.row++
		m.clampCursor()
		m.updateSelectionActive()
	case "shift+left":
		m.startOrExtendSelection()
		m.stepLeft()
		m.updateSelectionActive()
	case "shift+right":
		m.startOrExtendSelection()
		m.stepRight()
		m.updateSelectionActive()
	case "shift+home":
		m.startOrExtendSelection()
		m.col = 0
		m.updateSelectionActive()
	case "shift+end":
		m.startOrExtendSelection()
		m.col = len(m.currentLine())
		m.updateSelectionActive()
	case "shift+pgup":
		m.startOrExtendSelection()
		m.row -= max(1, m.height)
		m.clampCursor()
		m.updateSelectionActive()
	case "shift+pgdown":
		m.startOrExtendSelection()
		m.row += max(1, m.height)
		m.clampCursor()
		m.updateSelectionActive()

	// --- Plain navigation: clear selection ---
	case "up":
		m.ClearSelection()
		m.row--
		m.clampCursor()
	case "down":
		m.ClearSelection()
		m.row++
		m.clampCursor()
	case "left":
		m.ClearSelection()
		m.stepLeft()
	case "right":
		m.ClearSelection()
		m.stepRight()
	case "home":
		m.ClearSelection()
		m.col = 0
	case "end":
		m.ClearSelection()
		m.col = len(m.currentLine())
	case "pgup":
		m.ClearSelection()
		m.row -= max(1, m.height)
		m.clampCursor()
	case "pgdown":
		m.ClearSelection()
		m.row += max(1, m.height)
		m.clampCursor()
	case "ctrl+home":
		m.ClearSelection()
		m.row, m.col = 0, 0
	case "ctrl+end":
		m.ClearSelection()
		m.row = len(m.lines) - 1
		m.col = len(m.currentLine())

	// --- Editing: a selection is replaced or removed first ---
	case "backspace", "ctrl+h":
		if !m.DeleteSelection() {
			m.deleteBack()
		}
	case "delete", "ctrl+d":
		if !m.DeleteSelection() {
			m.deleteForward()
		}
	case "enter":
		if m.beginEdit(editPaste) {
			m.deleteSelection()
			m.insertNewline()
		}
	case "tab":
		if m.beginEdit(editType) {
			m.deleteSelection()
			m.tabIndent()
		}

	default:
		if msg.Text == "" || m.ReadOnly {
			return
		}
		kind := editType
		if m.HasSelection() {
			kind = editPaste
		}
		if m.beginEdit(kind) {
			m.deleteSelection()
			for _, r := range msg.Text {
				m.insertRune(r)
			}
		}
		m.clampCursor()
		m.clampScroll()
		return
	}

	m.hist.breakGroup()
	m.clampCursor()
	m.clampScroll()
}

func (m *Model) stepLeft() {
	if m.col > 0 {
		m.col--
	} else if m.row > 0 {
		m.row--
		m.col = len(m.currentLine())
	}
}

func (m *Model) stepRight() {
	if m.col < len(m.currentLine()) {
		m.col++
	} else if m.row < len(m.lines)-1 {
		m.row++
		m.col = 0
	}
}

// screenToPos converts editor-relative x,y to a buffer position.
func (m *Model) screenToPos(x, y int) pos {
	row := clamp(m.scroll+max(0, y), 0, len(m.lines)-1)
	cell := max(0, x-m.visibleGutter()) + m.xoff
	return pos{row: row, col: m.cellToBufferCol(row, cell)}
}
