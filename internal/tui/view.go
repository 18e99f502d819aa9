package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/tabpad/internal/tui/menu"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.textView != nil:
		content = m.textView.View(m.width, m.height)
	case m.picker != nil:
		content = m.picker.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the screen without modal overlays: menu bar, tab
// bar, editor and status line, with any open drop-down drawn on top.
func (m Model) renderContent() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.menu.BarView(m.width))
	rows = append(rows, m.renderTabBar())

	editorH := m.layout.editor.Dy()
	if tab := m.tabs.Current(); tab != nil {
		rows = append(rows, strings.Split(tab.Editor.View(), "\n")...)
	} else {
		blank := m.styles.BgFill.Render(strings.Repeat(" ", m.width))
		for range editorH {
			rows = append(rows, blank)
		}
	}
	rows = append(rows, m.renderStatusBar())

	if len(rows) > m.height {
		rows = rows[:m.height]
	}
	content := strings.Join(rows, "\n")
	if m.menu.IsOpen() {
		x, y, _, _ := m.menu.DropdownBounds(menuRow)
		content = menu.Overlay(content, m.menu.DropdownView(), x, y)
	}
	return content
}

// tabLabel is the text of one tab on the bar. Modified tabs carry a marker.
func tabLabel(t *Tab) string {
	if t.Modified() {
		return " " + t.Title + " * "
	}
	return " " + t.Title + " "
}

// tabSpans returns the [start, end) screen column of each tab, after
// scrolling the bar so the current tab is visible.
func (m Model) tabSpans() [][2]int {
	all := m.tabs.All()
	spans := make([][2]int, len(all))
	x := 0
	for i, t := range all {
		w := ansi.StringWidth(tabLabel(t))
		spans[i] = [2]int{x, x + w}
		x += w
	}
	if cur := m.tabs.CurrentIndex(); cur >= 0 && spans[cur][1] > m.width {
		shift := spans[cur][1] - m.width
		for i := range spans {
			spans[i][0] -= shift
			spans[i][1] -= shift
		}
	}
	return spans
}

// tabAt returns the index of the tab under screen column x, or -1.
func (m Model) tabAt(x int) int {
	for i, sp := range m.tabSpans() {
		if x >= max(0, sp[0]) && x < sp[1] {
			return i
		}
	}
	return -1
}

// renderTabBar renders the tab titles as one row of exactly width cells.
func (m Model) renderTabBar() string {
	all := m.tabs.All()
	spans := m.tabSpans()
	cur := m.tabs.CurrentIndex()

	var b strings.Builder
	for i, t := range all {
		sty := m.styles.TabInactive
		if i == cur {
			sty = m.styles.TabActive
		}
		b.WriteString(sty.Render(tabLabel(t)))
	}
	bar := b.String()
	if len(spans) > 0 && spans[0][0] < 0 {
		bar = ansi.TruncateLeft(bar, -spans[0][0], "")
	}
	bar = ansi.Truncate(bar, m.width, "")
	if pad := m.width - ansi.StringWidth(bar); pad > 0 {
		bar += m.styles.TabInactive.Render(strings.Repeat(" ", pad))
	}
	return bar
}

// renderStatusBar renders the prompt when one is open, else the status
// message on the left and the cursor position and key hints on the right.
func (m Model) renderStatusBar() string {
	if m.prompt != nil {
		return m.fitStatus(m.styles.StatusInfo.Render(" ")+m.prompt.input.View(), "")
	}

	var left string
	if m.macro.recording {
		left = m.styles.Recording.Render(" REC")
	}
	if m.status != "" {
		sty := m.styles.StatusInfo
		if m.statusErr {
			sty = m.styles.Error
		}
		left += sty.Render(" " + m.status)
	}

	var pos string
	if tab := m.tabs.Current(); tab != nil {
		row, col := tab.Editor.Cursor()
		pos = fmt.Sprintf("Ln %d, Col %d", row+1, col+1)
		if tab.Editor.Language != "" {
			pos += "  " + tab.Editor.Language
		}
		pos = m.styles.StatusText.Render(pos)
	}
	// Key hints go first when space runs out, then the cursor position.
	if full := joinNonEmpty(m.styles.StatusText.Render("  "), pos, m.helpView()); fits(left, full, m.width) {
		return m.fitStatus(left, full)
	}
	if fits(left, pos, m.width) {
		return m.fitStatus(left, pos)
	}
	return m.fitStatus(left, "")
}

func fits(left, right string, width int) bool {
	return lipgloss.Width(left)+lipgloss.Width(right)+1 <= width
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// fitStatus composes left and right into exactly width cells. The right
// side is dropped when both do not fit.
func (m Model) fitStatus(left, right string) string {
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	if !fits(left, right, m.width) {
		right, rightW = "", 0
	}
	left = ansi.Truncate(left, m.width, "")
	leftW = min(leftW, m.width)
	gap := max(0, m.width-leftW-rightW-1)
	line := left + m.styles.StatusText.Render(strings.Repeat(" ", gap)) + right
	if rightW > 0 {
		line += m.styles.StatusText.Render(" ")
	}
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += m.styles.StatusText.Render(strings.Repeat(" ", pad))
	}
	return line
}

// helpView renders the short key hints with the status bar colors.
func (m Model) helpView() string {
	h := m.help
	h.Styles.ShortKey = m.styles.StatusInfo
	h.Styles.ShortDesc = m.styles.StatusText
	h.Styles.ShortSeparator = m.styles.StatusText
	return h.ShortHelpView(m.keys.ShortHelp())
}
