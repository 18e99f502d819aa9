package editor

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/tabpad/internal/highlight"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders exactly Height rows, each exactly Width cells wide.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	gw := m.visibleGutter()
	tw := m.width - gw
	bg := m.bgStyle()

	var b strings.Builder
	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}
		row := m.scroll + vi
		if row >= len(m.lines) {
			if gw > 0 {
				b.WriteString(m.gutterStyle(false).Render(strings.Repeat(" ", gw)))
			}
			b.WriteString(bg.Render(strings.Repeat(" ", tw)))
			continue
		}
		if gw > 0 {
			b.WriteString(m.renderGutter(row, gw))
		}
		b.WriteString(m.renderLine(row, tw))
	}
	return b.String()
}

// CurrentLineHighlighted reports whether the cursor row is drawn with the
// current-line background. Read-only buffers never are.
func (m Model) CurrentLineHighlighted() bool {
	return m.HighlightCurrentLine && !m.ReadOnly && m.Colors.CurrentLine != ""
}

func (m Model) gutterStyle(current bool) lipgloss.Style {
	sty := lipgloss.NewStyle()
	switch {
	case m.Colors.GutterBg != "":
		sty = sty.Background(lipgloss.Color(m.Colors.GutterBg))
	case m.Colors.Bg != "":
		sty = sty.Background(lipgloss.Color(m.Colors.Bg))
	}
	fg := m.Colors.GutterFg
	if current && m.Colors.GutterCurrent != "" {
		fg = m.Colors.GutterCurrent
	}
	if fg != "" {
		sty = sty.Foreground(lipgloss.Color(fg))
	}
	return sty
}

// renderGutter draws the right-aligned line number followed by one space.
func (m Model) renderGutter(row, gw int) string {
	num := fmt.Sprintf("%*d ", gw-1, row+1)
	return m.gutterStyle(row == m.row).Render(num)
}

type cellClass int

const (
	classText cellClass = iota
	classSelected
	classCursor
)

// renderLine draws the visible window [xoff, xoff+tw) of one buffer row.
func (m Model) renderLine(row, tw int) string {
	rowSty := m.bgStyle()
	rowBgHex := m.Colors.Bg
	if row == m.row && m.CurrentLineHighlighted() {
		rowSty = rowSty.Background(lipgloss.Color(m.Colors.CurrentLine))
		rowBgHex = m.Colors.CurrentLine
	}

	text := m.expandTabs(string(m.lines[row]))
	textCells := ansi.StringWidth(text)

	var hl string
	if m.Language != "" && m.SyntaxTheme != "" && text != "" {
		hl = highlight.Line(text, m.Language, m.SyntaxTheme, rowBgHex)
	}

	left, right := m.xoff, m.xoff+tw

	// Cut points: window edges, selection edges and the cursor cell.
	cuts := []int{left, right}
	selStart, selEnd, hasSel := m.selectedCells(row)
	if hasSel {
		cuts = append(cuts, selStart, selEnd)
	}
	cursorCell := -1
	if m.focus && row == m.row {
		cursorCell = m.bufferColToCell(row, m.col)
		cuts = append(cuts, cursorCell, cursorCell+m.cursorCellWidth())
	}
	lineEnd := max(textCells, selEnd)
	if cursorCell >= 0 {
		lineEnd = max(lineEnd, cursorCell+1)
	}
	cuts = append(cuts, lineEnd)
	sort.Ints(cuts)

	selSty := m.selectionStyle()
	var b strings.Builder
	prev := left
	for _, c := range cuts {
		c = clamp(c, left, min(right, lineEnd))
		if c <= prev {
			continue
		}
		b.WriteString(m.renderSpan(text, hl, prev, c, m.classify(prev, cursorCell, selStart, selEnd, hasSel), rowSty, selSty))
		prev = c
	}

	out := b.String()
	w := ansi.StringWidth(out)
	if w > tw {
		out = ansi.Truncate(out, tw, "")
		w = ansi.StringWidth(out)
	}
	if w < tw {
		out += rowSty.Render(strings.Repeat(" ", tw-w))
	}
	return out
}

func (m Model) classify(cell, cursorCell, selStart, selEnd int, hasSel bool) cellClass {
	switch {
	case cell == cursorCell:
		return classCursor
	case hasSel && cell >= selStart && cell < selEnd:
		return classSelected
	default:
		return classText
	}
}

// renderSpan draws cells [from, to) of text in the given class. Cells past
// the end of the text render as spaces.
func (m Model) renderSpan(text, hl string, from, to int, class cellClass, rowSty, selSty lipgloss.Style) string {
	plain := ansi.Cut(text, from, to)
	if pad := (to - from) - ansi.StringWidth(plain); pad > 0 {
		plain += strings.Repeat(" ", pad)
	}
	switch class {
	case classCursor:
		return rowSty.Reverse(true).Render(plain)
	case classSelected:
		return selSty.Render(plain)
	}
	if hl == "" {
		return rowSty.Render(plain)
	}
	textCells := ansi.StringWidth(text)
	if from >= textCells {
		return rowSty.Render(plain)
	}
	out := ansi.Cut(hl, from, min(to, textCells)) + "\x1b[0m"
	if to > textCells {
		out += rowSty.Render(strings.Repeat(" ", to-textCells))
	}
	return out
}

func (m Model) cursorCellWidth() int {
	line := m.lines[m.row]
	if m.col < len(line) && line[m.col] != '\t' {
		return runeCells(line[m.col])
	}
	return 1
}

func (m Model) selectionStyle() lipgloss.Style {
	sty := lipgloss.NewStyle()
	if m.Colors.SelectionBg == "" {
		return sty.Reverse(true)
	}
	sty = sty.Background(lipgloss.Color(m.Colors.SelectionBg))
	if m.Colors.SelectionFg != "" {
		sty = sty.Foreground(lipgloss.Color(m.Colors.SelectionFg))
	}
	return sty
}
