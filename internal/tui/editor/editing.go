package editor

import "strings"

// ---------------------------------------------------------------------------
// Editing operations
// ---------------------------------------------------------------------------

// InsertText inserts a multi-line string at the cursor, replacing any
// selection. Carriage returns are dropped. No-op if ReadOnly.
func (m *Model) InsertText(text string) {
	if text == "" || !m.beginEdit(editPaste) {
		return
	}
	m.deleteSelection()
	m.insertString(text)
	m.clampScroll()
}

func (m *Model) insertString(text string) {
	for _, r := range text {
		switch r {
		case '\n':
			m.insertNewline()
		case '\r':
		default:
			m.insertRune(r)
		}
	}
}

func (m *Model) insertRune(r rune) {
	line := m.currentLine()
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:m.col]...)
	newLine = append(newLine, r)
	newLine = append(newLine, line[m.col:]...)
	m.lines[m.row] = newLine
	m.col++
}

func (m *Model) insertNewline() {
	line := m.currentLine()
	after := make([]rune, len(line[m.col:]))
	copy(after, line[m.col:])
	m.lines[m.row] = line[:m.col:m.col]
	newLines := make([][]rune, 0, len(m.lines)+1)
	newLines = append(newLines, m.lines[:m.row+1]...)
	newLines = append(newLines, after)
	newLines = append(newLines, m.lines[m.row+1:]...)
	m.lines = newLines
	m.row++
	m.col = 0
}

func (m *Model) deleteBack() {
	if m.col == 0 && m.row == 0 {
		return
	}
	if !m.beginEdit(editDelete) {
		return
	}
	if m.col > 0 {
		line := m.currentLine()
		m.lines[m.row] = append(line[:m.col-1:m.col-1], line[m.col:]...)
		m.col--
		return
	}
	prev := m.lines[m.row-1]
	m.col = len(prev)
	m.lines[m.row-1] = append(prev[:len(prev):len(prev)], m.currentLine()...)
	m.lines = append(m.lines[:m.row], m.lines[m.row+1:]...)
	m.row--
}

func (m *Model) deleteForward() {
	line := m.currentLine()
	if m.col >= len(line) && m.row >= len(m.lines)-1 {
		return
	}
	if !m.beginEdit(editDelete) {
		return
	}
	if m.col < len(line) {
		m.lines[m.row] = append(line[:m.col:m.col], line[m.col+1:]...)
		return
	}
	m.lines[m.row] = append(line[:len(line):len(line)], m.lines[m.row+1]...)
	m.lines = append(m.lines[:m.row+1], m.lines[m.row+2:]...)
}

// tabIndent indents to match the leading whitespace of the line above, or
// inserts a single tab when there is none.
func (m *Model) tabIndent() {
	var indent []rune
	if m.row > 0 {
		for _, r := range m.lines[m.row-1] {
			if r != ' ' && r != '\t' {
				break
			}
			indent = append(indent, r)
		}
	}
	if len(indent) == 0 {
		indent = []rune{'\t'}
	}
	for _, r := range indent {
		m.insertRune(r)
	}
}

// TrimTrailingWhitespace strips spaces and tabs from the end of every line
// and returns how many lines changed. The whole pass is one undo step.
func (m *Model) TrimTrailingWhitespace() int {
	if m.ReadOnly {
		return 0
	}
	var changed []int
	for i, line := range m.lines {
		if trimmed := strings.TrimRight(string(line), " \t"); len(trimmed) != len(string(line)) {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 || !m.beginEdit(editBulk) {
		return 0
	}
	for _, i := range changed {
		m.lines[i] = []rune(strings.TrimRight(string(m.lines[i]), " \t"))
	}
	m.ClearSelection()
	m.clampCursor()
	m.clampScroll()
	return len(changed)
}
