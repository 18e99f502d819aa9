package editor

import "strings"

// selection is an anchored range; active follows the cursor.
type selection struct {
	anchor pos
	active pos
}

func (s selection) empty() bool { return s.anchor == s.active }

// ordered returns the selection bounds with start before end.
func (s selection) ordered() (pos, pos) {
	if before(s.active, s.anchor) {
		return s.active, s.anchor
	}
	return s.anchor, s.active
}

func before(a, b pos) bool {
	return a.row < b.row || (a.row == b.row && a.col < b.col)
}

// HasSelection reports whether a non-empty range is selected.
func (m Model) HasSelection() bool { return m.sel != nil && !m.sel.empty() }

// ClearSelection drops the selection without touching the text.
func (m *Model) ClearSelection() {
	m.sel = nil
	m.dragging = false
}

// SelectAll selects the whole buffer and moves the cursor to its end.
func (m *Model) SelectAll() {
	last := len(m.lines) - 1
	end := pos{row: last, col: len(m.lines[last])}
	m.sel = &selection{anchor: pos{}, active: end}
	m.row, m.col = end.row, end.col
	m.clampScroll()
}

// Select selects the range [from, to) given as (row, col) pairs and places
// the cursor at to.
func (m *Model) Select(fromRow, fromCol, toRow, toCol int) {
	m.row, m.col = fromRow, fromCol
	m.clampCursor()
	anchor := pos{m.row, m.col}
	m.row, m.col = toRow, toCol
	m.clampCursor()
	m.sel = &selection{anchor: anchor, active: pos{m.row, m.col}}
	m.clampScroll()
}

// SelectedText returns the selected text joined with \n.
func (m Model) SelectedText() string {
	if !m.HasSelection() {
		return ""
	}
	start, end := m.sel.ordered()
	if start.row == end.row {
		return string(m.lines[start.row][start.col:end.col])
	}
	var sb strings.Builder
	sb.WriteString(string(m.lines[start.row][start.col:]))
	for r := start.row + 1; r < end.row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(m.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(m.lines[end.row][:end.col]))
	return sb.String()
}

// DeleteSelection removes the selected text as its own undo step and reports
// whether anything was removed.
func (m *Model) DeleteSelection() bool {
	if !m.HasSelection() || !m.beginEdit(editDelete) {
		return false
	}
	m.deleteSelection()
	m.clampScroll()
	return true
}

// deleteSelection removes the selected text without recording history.
func (m *Model) deleteSelection() {
	if !m.HasSelection() {
		m.ClearSelection()
		return
	}
	start, end := m.sel.ordered()
	head := m.lines[start.row][:start.col:start.col]
	tail := m.lines[end.row][end.col:]
	merged := append(head, tail...)

	newLines := make([][]rune, 0, len(m.lines)-(end.row-start.row))
	newLines = append(newLines, m.lines[:start.row]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, m.lines[end.row+1:]...)
	m.lines = newLines
	m.row, m.col = start.row, start.col
	m.ClearSelection()
}

func (m *Model) startOrExtendSelection() {
	if m.sel == nil {
		p := pos{m.row, m.col}
		m.sel = &selection{anchor: p, active: p}
	}
}

func (m *Model) updateSelectionActive() {
	if m.sel != nil {
		m.sel.active = pos{m.row, m.col}
	}
}

// selectedCells returns the selected cell span [start, end) on row, or
// ok=false when the row holds no selection.
func (m Model) selectedCells(row int) (start, end int, ok bool) {
	if !m.HasSelection() {
		return 0, 0, false
	}
	s, e := m.sel.ordered()
	if row < s.row || row > e.row {
		return 0, 0, false
	}
	startCol, endCol := 0, len(m.lines[row])
	if row == s.row {
		startCol = s.col
	}
	if row == e.row {
		endCol = e.col
	}
	start = m.bufferColToCell(row, startCol)
	end = m.bufferColToCell(row, endCol)
	if row != e.row {
		end++ // the selected line break shows as one cell
	}
	return start, end, start < end
}
