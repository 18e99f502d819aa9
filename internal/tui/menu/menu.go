// Package menu implements the menu bar on the top row and its drop-downs.
// The menu only reports which item was activated; the caller performs it.
package menu

import (
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Item is one entry of a drop-down.
type Item struct {
	Label  string
	Action string // Opaque identifier handed back on activation
	Key    string // Shortcut hint shown on the right, may be empty
}

// Menu is one title on the bar and its items.
type Menu struct {
	Title string
	Items []Item
}

// Colors holds the hex colors the bar and drop-downs render with.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

// Model is the menu bar state.
type Model struct {
	menus    []Menu
	colors   Colors
	open     bool
	active   int // Index of the open menu
	selected int // Index of the highlighted item in the open menu
}

// New creates a closed menu bar.
func New(menus []Menu, colors Colors) Model {
	return Model{menus: menus, colors: colors}
}

// Menus returns the configured menus.
func (m Model) Menus() []Menu { return m.menus }

// IsOpen reports whether a drop-down is showing.
func (m Model) IsOpen() bool { return m.open }

// Active returns the index of the open menu, or -1 when closed.
func (m Model) Active() int {
	if !m.open {
		return -1
	}
	return m.active
}

// Selected returns the highlighted item index in the open menu.
func (m Model) Selected() int { return m.selected }

// Open shows menu i with its first item highlighted.
func (m *Model) Open(i int) {
	if i < 0 || i >= len(m.menus) {
		return
	}
	m.open = true
	m.active = i
	m.selected = 0
}

// Close hides the drop-down.
func (m *Model) Close() { m.open = false }

// Hotkey returns the menu index whose title starts with r (case-insensitive),
// or -1.
func (m Model) Hotkey(r rune) int {
	r = unicode.ToLower(r)
	for i, mn := range m.menus {
		if t := []rune(mn.Title); len(t) > 0 && unicode.ToLower(t[0]) == r {
			return i
		}
	}
	return -1
}

// HandleKey processes a key press while the menu is open. It returns the
// activated action, if any, and whether the key was consumed.
func (m *Model) HandleKey(msg tea.KeyPressMsg) (action string, handled bool) {
	if !m.open {
		return "", false
	}
	k := msg.Keystroke()
	switch k {
	case "esc", "f10":
		m.Close()
	case "left", "shift+tab":
		m.active = (m.active - 1 + len(m.menus)) % len(m.menus)
		m.selected = 0
	case "right", "tab":
		m.active = (m.active + 1) % len(m.menus)
		m.selected = 0
	case "up":
		if n := len(m.menus[m.active].Items); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case "down":
		if n := len(m.menus[m.active].Items); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "home":
		m.selected = 0
	case "end":
		m.selected = max(0, len(m.menus[m.active].Items)-1)
	case "enter", "space":
		return m.activate(m.selected), true
	default:
		if strings.HasPrefix(k, "alt+") {
			if r := []rune(strings.TrimPrefix(k, "alt+")); len(r) == 1 {
				if i := m.Hotkey(r[0]); i >= 0 {
					m.Open(i)
				}
			}
		}
	}
	// An open menu swallows every other key.
	return "", true
}

func (m *Model) activate(i int) string {
	items := m.menus[m.active].Items
	if i < 0 || i >= len(items) {
		return ""
	}
	m.Close()
	return items[i].Action
}

// HandleMouse processes a click at absolute screen coordinates, with the bar
// on row barY. It returns the activated action and whether the click landed
// on the bar or the open drop-down.
func (m *Model) HandleMouse(msg tea.MouseClickMsg, barY int) (action string, handled bool) {
	if msg.Button != tea.MouseLeft {
		return "", m.open
	}
	if msg.Y == barY {
		i := m.TitleAt(msg.X)
		switch {
		case i < 0:
			m.Close()
		case m.open && m.active == i:
			m.Close()
		default:
			m.Open(i)
		}
		return "", true
	}
	if !m.open {
		return "", false
	}
	x0, y0, w, _ := m.DropdownBounds(barY)
	row := msg.Y - y0 - 1 // skip top border
	if msg.X >= x0 && msg.X < x0+w && row >= 0 && row < len(m.menus[m.active].Items) {
		m.selected = row
		return m.activate(row), true
	}
	m.Close()
	return "", true
}

// TitleAt returns the menu index whose title covers screen column x, or -1.
func (m Model) TitleAt(x int) int {
	for i, sp := range m.titleSpans() {
		if x >= sp[0] && x < sp[1] {
			return i
		}
	}
	return -1
}

// titleSpans returns the [start, end) column of each rendered title.
func (m Model) titleSpans() [][2]int {
	spans := make([][2]int, len(m.menus))
	x := 0
	for i, mn := range m.menus {
		w := lipgloss.Width(mn.Title) + 2
		spans[i] = [2]int{x, x + w}
		x += w
	}
	return spans
}

// BarView renders the menu bar as one row of exactly width cells.
func (m Model) BarView(width int) string {
	base := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.Fg)).
		Background(lipgloss.Color(m.colors.Bg))
	sel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))
	hot := base.Underline(true)

	var sb strings.Builder
	for i, mn := range m.menus {
		if m.open && i == m.active {
			sb.WriteString(sel.Render(" " + mn.Title + " "))
			continue
		}
		r := []rune(mn.Title)
		sb.WriteString(base.Render(" "))
		sb.WriteString(hot.Render(string(r[:1])))
		sb.WriteString(base.Render(string(r[1:]) + " "))
	}
	bar := ansi.Truncate(sb.String(), width, "")
	if w := lipgloss.Width(bar); w < width {
		bar += base.Render(strings.Repeat(" ", width-w))
	}
	return bar
}

// DropdownBounds returns the screen rectangle of the open drop-down.
func (m Model) DropdownBounds(barY int) (x, y, w, h int) {
	if !m.open {
		return 0, 0, 0, 0
	}
	labelW, keyW := m.columnWidths()
	w = labelW + keyW + 6 // border, padding, gap
	if keyW == 0 {
		w -= 2
	}
	return m.titleSpans()[m.active][0], barY + 1, w, len(m.menus[m.active].Items) + 2
}

func (m Model) columnWidths() (labelW, keyW int) {
	for _, it := range m.menus[m.active].Items {
		labelW = max(labelW, lipgloss.Width(it.Label))
		keyW = max(keyW, lipgloss.Width(it.Key))
	}
	return labelW, keyW
}

// DropdownView renders the open drop-down as a bordered box, or "".
func (m Model) DropdownView() string {
	if !m.open {
		return ""
	}
	labelW, keyW := m.columnWidths()
	bg := lipgloss.Color(m.colors.Bg)
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Fg)).Background(bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).Background(bg)
	sel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	rows := make([]string, 0, len(m.menus[m.active].Items))
	for i, it := range m.menus[m.active].Items {
		label := it.Label + strings.Repeat(" ", labelW-lipgloss.Width(it.Label))
		key := ""
		if keyW > 0 {
			key = "  " + strings.Repeat(" ", keyW-lipgloss.Width(it.Key)) + it.Key
		}
		if i == m.selected {
			rows = append(rows, sel.Render(" "+label+key+" "))
			continue
		}
		rows = append(rows, base.Render(" "+label)+dim.Render(key)+base.Render(" "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.colors.Border)).
		BorderBackground(bg).
		Background(bg).
		Render(strings.Join(rows, "\n"))
}

// Overlay draws box over base with its top-left corner at (x, y), cutting
// base rows cell-accurately so ANSI styling on either side survives.
func Overlay(base, box string, x, y int) string {
	if box == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for i, row := range strings.Split(box, "\n") {
		ly := y + i
		if ly < 0 || ly >= len(lines) {
			continue
		}
		line := lines[ly]
		lw := lipgloss.Width(line)
		bw := lipgloss.Width(row)
		left := ansi.Truncate(line, x, "")
		if pad := x - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if x+bw < lw {
			right = ansi.TruncateLeft(line, x+bw, "")
		}
		lines[ly] = left + "\x1b[0m" + row + "\x1b[0m" + right
	}
	return strings.Join(lines, "\n")
}
