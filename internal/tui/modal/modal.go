// Package modal provides the centred overlays drawn above the editor: a
// searchable picker and a scrollable read-only text view.
package modal

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals an item was chosen.
type ActionSelect struct{ Item Item }

// ActionSubmit signals enter was pressed with no matching item. Query holds
// the raw input, e.g. a path typed by hand.
type ActionSubmit struct{ Query string }

// Item is a single entry in the list.
type Item struct {
	Name  string // Shown in the list
	Desc  string // Dimmed suffix
	Value string // Payload handed back on selection (path, tab index)
}

// SearchFunc is called with the current query to produce results.
type SearchFunc func(query string) []Item

// Colors holds the theme colors for the modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

const debounceDelay = 120 * time.Millisecond

// debounceMsg is sent after the debounce timer fires.
type debounceMsg struct {
	id  string
	seq int
}

// Model is a picker: a query line above a filtered list.
type Model struct {
	id       string
	title    string
	input    []rune
	cursor   int
	items    []Item
	selected int
	inList   bool // true = list focused, false = input focused

	searchFn SearchFunc
	seq      int // debounce sequence counter

	colors Colors

	// Prompt shown before the input text.
	Prompt string
}

// New creates a picker. id tags its debounce messages so a late tick from
// a previous picker is ignored.
func New(id, title string, searchFn SearchFunc, colors Colors) Model {
	m := Model{
		id:       id,
		title:    title,
		searchFn: searchFn,
		Prompt:   "> ",
		colors:   colors,
	}
	m.items = searchFn("")
	return m
}

// ID returns the identifier given to New.
func (m Model) ID() string { return m.id }

// Query returns the current input.
func (m Model) Query() string { return string(m.input) }

// Items returns the current result list.
func (m Model) Items() []Item { return m.items }

// DebounceCmd returns a tea.Cmd that fires after the debounce delay.
func (m *Model) DebounceCmd() tea.Cmd {
	id, seq := m.id, m.seq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

// HandleMsg processes a tea.Msg and returns an optional Action.
// The second return is a tea.Cmd the parent must dispatch (for debounce).
func (m *Model) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.PasteMsg:
		m.insert(strings.ReplaceAll(msg.Content, "\n", ""))
		return nil, m.DebounceCmd()
	case debounceMsg:
		if msg.id == m.id && msg.seq == m.seq {
			m.refresh()
		}
	}
	return nil, nil
}

func (m *Model) refresh() {
	m.items = m.searchFn(string(m.input))
	m.selected = 0
	m.inList = false
}

func (m *Model) insert(s string) {
	if m.inList || s == "" {
		return
	}
	rs := []rune(s)
	m.input = append(m.input[:m.cursor], append(rs, m.input[m.cursor:]...)...)
	m.cursor += len(rs)
	m.seq++
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (Action, tea.Cmd) {
	switch k := msg.Keystroke(); k {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		return m.handleEnter(), nil
	case "up", "down", "tab", "shift+tab":
		m.handleNav(k)
		return nil, nil
	case "backspace", "delete", "ctrl+u", "ctrl+k":
		if m.handleDelete(k) {
			m.seq++
			return nil, m.DebounceCmd()
		}
		return nil, nil
	case "left", "right", "home", "end":
		m.handleCursor(k)
		return nil, nil
	}

	if !m.inList && msg.Text != "" {
		m.insert(msg.Text)
		return nil, m.DebounceCmd()
	}
	return nil, nil
}

func (m *Model) handleEnter() Action {
	// Results may lag the input while a debounce is pending.
	if !m.inList {
		m.refresh()
	}
	if len(m.items) == 0 {
		if q := strings.TrimSpace(string(m.input)); q != "" {
			return ActionSubmit{Query: q}
		}
		return nil
	}
	idx := m.selected
	if idx >= len(m.items) {
		idx = 0
	}
	return ActionSelect{Item: m.items[idx]}
}

func (m *Model) handleNav(key string) {
	switch key {
	case "up", "shift+tab":
		if !m.inList {
			return
		}
		if m.selected > 0 {
			m.selected--
		} else {
			m.inList = false
		}
	case "down", "tab":
		if !m.inList {
			if len(m.items) > 0 {
				m.inList = true
				m.selected = 0
			}
		} else if m.selected < len(m.items)-1 {
			m.selected++
		}
	}
}

// handleDelete edits the input and reports whether it changed.
func (m *Model) handleDelete(key string) bool {
	if m.inList {
		return false
	}
	switch key {
	case "backspace":
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
			return true
		}
	case "delete":
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
			return true
		}
	case "ctrl+u":
		m.input = m.input[m.cursor:]
		m.cursor = 0
		return true
	case "ctrl+k":
		m.input = m.input[:m.cursor]
		return true
	}
	return false
}

func (m *Model) handleCursor(key string) {
	if m.inList {
		return
	}
	switch key {
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(m.input) {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.input)
	}
}

// View renders the picker centred in an appWidth x appHeight area.
func (m *Model) View(appWidth, appHeight int) string {
	w, h := boxSize(appWidth, appHeight)
	innerW := max(10, w-4)

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim))
	titleStyle := lipgloss.NewStyle().Bold(true)

	listHeight := max(1, h-5) // border, title, input, divider
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(ansi.Truncate(m.title, innerW, "…")))
	sb.WriteByte('\n')
	sb.WriteString(m.renderInput(innerW))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))
	for _, l := range m.renderList(innerW, listHeight) {
		sb.WriteByte('\n')
		sb.WriteString(l)
	}

	return frame(sb.String(), w, appWidth, appHeight, m.colors)
}

func (m *Model) renderInput(innerW int) string {
	prompt := m.Prompt
	if m.inList {
		return ansi.Truncate(prompt+string(m.input), innerW, "")
	}
	before := string(m.input[:m.cursor])
	cursorChar := " "
	after := ""
	if m.cursor < len(m.input) {
		cursorChar = string(m.input[m.cursor])
		after = string(m.input[m.cursor+1:])
	}
	// Keep the cursor visible when the query outgrows the box.
	if over := lipgloss.Width(prompt+before) + 1 - innerW; over > 0 {
		before = ansi.TruncateLeft(before, over, "")
	}
	line := prompt + before + lipgloss.NewStyle().Reverse(true).Render(cursorChar) + after
	return ansi.Truncate(line, innerW, "")
}

func (m *Model) renderList(innerW, listHeight int) []string {
	scrollOff := 0
	if m.selected >= listHeight {
		scrollOff = m.selected - listHeight + 1
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim))
	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	var lines []string
	if len(m.items) == 0 {
		lines = append(lines, dimStyle.Render(padRight("no matches", innerW)))
	}
	for i := scrollOff; i < len(m.items) && len(lines) < listHeight; i++ {
		item := m.items[i]
		if i == m.selected && m.inList {
			lines = append(lines, selStyle.Render(padRight(ansi.Truncate(item.Name, innerW, "…"), innerW)))
			continue
		}
		line := ansi.Truncate(item.Name, innerW, "…")
		if item.Desc != "" {
			if room := innerW - lipgloss.Width(line) - 2; room > 0 {
				line += dimStyle.Render("  " + ansi.Truncate(item.Desc, room, "…"))
			}
		}
		lines = append(lines, padRight(line, innerW))
	}

	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerW))
	}
	return lines
}

func boxSize(appWidth, appHeight int) (int, int) {
	w := min(max(30, appWidth*70/100), max(appWidth, 30))
	h := min(max(8, appHeight*70/100), max(appHeight, 8))
	return w, h
}

// frame wraps content in the rounded border and centres it.
func frame(content string, w, appWidth, appHeight int, c Colors) string {
	bg := lipgloss.Color(c.Bg)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(c.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(content)

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
