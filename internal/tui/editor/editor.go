// Package editor provides the text editing widget shown in each tab.
// It renders a line-number gutter that tracks vertical scroll, highlights
// the cursor row across the full width, and supports Chroma syntax
// highlighting, mouse cursor placement, drag-to-select and undo.
package editor

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Colors holds the hex colors ("#rrggbb") the widget renders with.
type Colors struct {
	Fg            string
	Bg            string
	GutterFg      string
	GutterBg      string
	GutterCurrent string // Line number of the cursor row
	CurrentLine   string // Background of the cursor row
	SelectionBg   string
	SelectionFg   string
}

// Model is a plain-text editor component.
type Model struct {
	// Public configuration, set before first Update/View.
	ReadOnly             bool
	ShowLineNumbers      bool
	HighlightCurrentLine bool
	Language             string // Chroma lexer name (empty = no highlighting)
	SyntaxTheme          string // Chroma style name (empty = no highlighting)
	TabWidth             int
	Colors               Colors
	Clipboard            Clipboard // nil = system clipboard with in-process fallback

	lines  [][]rune // Backing store, never empty
	row    int      // Cursor row (0-indexed into lines)
	col    int      // Cursor column (0-indexed into line runes)
	scroll int      // First visible row
	xoff   int      // First visible cell column

	width  int
	height int
	focus  bool

	sel      *selection
	dragging bool

	hist         history
	version      int
	savedVersion int
	nextVersion  int
}

type pos struct{ row, col int }

// New creates an empty editor.
func New() Model {
	return Model{
		ShowLineNumbers:      true,
		HighlightCurrentLine: true,
		TabWidth:             4,
		lines:                [][]rune{{}},
		nextVersion:          1,
	}
}

// ---------------------------------------------------------------------------
// Public methods called by parent
// ---------------------------------------------------------------------------

func (m *Model) SetWidth(w int)  { m.width = w; m.clampScroll() }
func (m *Model) SetHeight(h int) { m.height = h; m.clampScroll() }

func (m Model) Width() int  { return m.width }
func (m Model) Height() int { return m.height }

func (m *Model) Focus()        { m.focus = true }
func (m *Model) Blur()         { m.focus = false; m.dragging = false }
func (m Model) Focused() bool { return m.focus }

// SetValue replaces the buffer, resets cursor, scroll and undo history, and
// marks the result as unmodified.
func (m *Model) SetValue(s string) {
	raw := strings.Split(s, "\n")
	m.lines = make([][]rune, len(raw))
	for i, l := range raw {
		m.lines[i] = []rune(l)
	}
	m.row, m.col, m.scroll, m.xoff = 0, 0, 0, 0
	m.ClearSelection()
	m.hist = history{}
	m.version = 0
	m.savedVersion = 0
}

// Value returns the buffer joined with \n.
func (m Model) Value() string {
	var sb strings.Builder
	for i, line := range m.lines {
		sb.WriteString(string(line))
		if i < len(m.lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Reset empties the buffer.
func (m *Model) Reset() { m.SetValue("") }

// LineCount returns the number of lines (at least 1).
func (m Model) LineCount() int { return len(m.lines) }

// Line returns line i without tab expansion.
func (m Model) Line(i int) string {
	if i < 0 || i >= len(m.lines) {
		return ""
	}
	return string(m.lines[i])
}

// Cursor returns the 0-indexed cursor row and rune column.
func (m Model) Cursor() (row, col int) { return m.row, m.col }

// SetCursor moves the cursor, clamped to the buffer, and scrolls to it.
func (m *Model) SetCursor(row, col int) {
	m.ClearSelection()
	m.row, m.col = row, col
	m.clampCursor()
	m.clampScroll()
}

// ScrollOffset returns the first visible row.
func (m Model) ScrollOffset() int { return m.scroll }

// Modified reports whether the buffer differs from the last SetValue or MarkSaved.
func (m Model) Modified() bool { return m.version != m.savedVersion }

// MarkSaved records the current buffer as the saved state.
func (m *Model) MarkSaved() { m.savedVersion = m.version }

// GutterWidth returns the width of the line-number column: the digit count
// of the highest line number plus one padding cell, or 0 when hidden.
func (m Model) GutterWidth() int {
	if !m.ShowLineNumbers {
		return 0
	}
	return len(strconv.Itoa(max(1, len(m.lines)))) + 1
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (m *Model) currentLine() []rune { return m.lines[m.row] }

func (m *Model) clampCursor() {
	m.row = clamp(m.row, 0, len(m.lines)-1)
	m.col = clamp(m.col, 0, len(m.currentLine()))
}

// visibleGutter is the gutter width actually drawn. A pane too narrow to
// hold any text next to the gutter drops it.
func (m Model) visibleGutter() int {
	if gw := m.GutterWidth(); gw < m.width {
		return gw
	}
	return 0
}

// textWidth returns the cells available for text after the gutter.
func (m Model) textWidth() int {
	return max(1, m.width-m.visibleGutter())
}

// clampScroll keeps the cursor inside the viewport in both directions.
func (m *Model) clampScroll() {
	if m.height > 0 {
		if m.row < m.scroll {
			m.scroll = m.row
		}
		if m.row >= m.scroll+m.height {
			m.scroll = m.row - m.height + 1
		}
	}
	m.clampScrollBounds()

	if m.width > 0 {
		tw := m.textWidth()
		cell := m.bufferColToCell(m.row, m.col)
		if cell < m.xoff {
			m.xoff = cell
		}
		if cell >= m.xoff+tw {
			m.xoff = cell - tw + 1
		}
	}
}

// clampScrollBounds keeps scroll within the content without following the cursor.
func (m *Model) clampScrollBounds() {
	maxScroll := max(0, len(m.lines)-m.height)
	m.scroll = clamp(m.scroll, 0, maxScroll)
}

func (m Model) tabWidth() int {
	if m.TabWidth <= 0 {
		return 4
	}
	return m.TabWidth
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func (m Model) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	tw := m.tabWidth()
	var b strings.Builder
	cell := 0
	for _, r := range s {
		if r == '\t' {
			n := tw - cell%tw
			b.WriteString(strings.Repeat(" ", n))
			cell += n
			continue
		}
		b.WriteRune(r)
		cell += runeCells(r)
	}
	return b.String()
}

// bufferColToCell converts a rune column to a display cell column.
func (m Model) bufferColToCell(row, col int) int {
	if row < 0 || row >= len(m.lines) {
		return 0
	}
	line := m.lines[row]
	col = clamp(col, 0, len(line))
	return ansi.StringWidth(m.expandTabs(string(line[:col])))
}

// cellToBufferCol converts a display cell column back to the rune column
// whose cell span contains it. Cells past the end map to the line end.
func (m Model) cellToBufferCol(row, cell int) int {
	line := m.lines[row]
	tw := m.tabWidth()
	c := 0
	for i, r := range line {
		w := runeCells(r)
		if r == '\t' {
			w = tw - c%tw
		}
		if cell < c+w {
			return i
		}
		c += w
	}
	return len(line)
}

func runeCells(r rune) int {
	return max(1, ansi.StringWidth(string(r)))
}

func (m Model) bgStyle() lipgloss.Style {
	sty := lipgloss.NewStyle()
	if m.Colors.Bg != "" {
		sty = sty.Background(lipgloss.Color(m.Colors.Bg))
	}
	if m.Colors.Fg != "" {
		sty = sty.Foreground(lipgloss.Color(m.Colors.Fg))
	}
	return sty
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
