package editor

const maxHistory = 500

type editKind int

const (
	editNone editKind = iota
	editType
	editDelete
	editPaste
	editBulk
)

type snapshot struct {
	lines    [][]rune
	row, col int
	version  int
}

// history holds whole-buffer snapshots. Consecutive typed runes share one
// undo step until the cursor moves or a different kind of edit happens.
type history struct {
	undo []snapshot
	redo []snapshot
	last editKind
}

func (h *history) record(s snapshot, kind editKind) {
	h.redo = nil
	if kind == editType && h.last == editType && len(h.undo) > 0 {
		return
	}
	h.undo = append(h.undo, s)
	if len(h.undo) > maxHistory {
		h.undo = h.undo[len(h.undo)-maxHistory:]
	}
	h.last = kind
}

func (h *history) breakGroup() { h.last = editNone }

func (m Model) snapshot() snapshot {
	lines := make([][]rune, len(m.lines))
	for i, l := range m.lines {
		lines[i] = append([]rune(nil), l...)
	}
	return snapshot{lines: lines, row: m.row, col: m.col, version: m.version}
}

func (m *Model) restore(s snapshot) {
	m.lines = s.lines
	m.row, m.col = s.row, s.col
	m.version = s.version
	m.ClearSelection()
	m.clampCursor()
	m.clampScroll()
}

// beginEdit records an undo point and bumps the buffer version. It returns
// false, recording nothing, when the editor is read-only.
func (m *Model) beginEdit(kind editKind) bool {
	if m.ReadOnly {
		return false
	}
	m.hist.record(m.snapshot(), kind)
	m.version = m.nextVersion
	m.nextVersion++
	return true
}

// CanUndo reports whether Undo would change anything.
func (m Model) CanUndo() bool { return len(m.hist.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (m Model) CanRedo() bool { return len(m.hist.redo) > 0 }

// Undo reverts the last edit step.
func (m *Model) Undo() bool {
	if m.ReadOnly || len(m.hist.undo) == 0 {
		return false
	}
	prev := m.hist.undo[len(m.hist.undo)-1]
	m.hist.undo = m.hist.undo[:len(m.hist.undo)-1]
	m.hist.redo = append(m.hist.redo, m.snapshot())
	m.hist.breakGroup()
	m.restore(prev)
	return true
}

// Redo re-applies the last undone step.
func (m *Model) Redo() bool {
	if m.ReadOnly || len(m.hist.redo) == 0 {
		return false
	}
	next := m.hist.redo[len(m.hist.redo)-1]
	m.hist.redo = m.hist.redo[:len(m.hist.redo)-1]
	m.hist.undo = append(m.hist.undo, m.snapshot())
	m.hist.breakGroup()
	m.restore(next)
	return true
}
