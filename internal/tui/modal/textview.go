package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// TextView is a read-only scrollable box, used for the key reference.
type TextView struct {
	title  string
	lines  []string
	scroll int
	colors Colors
}

// NewTextView creates a text viewer.
func NewTextView(title, content string, colors Colors) TextView {
	return TextView{
		title:  title,
		lines:  strings.Split(content, "\n"),
		colors: colors,
	}
}

// HandleMsg processes key and wheel events. Returns ActionClose when the view
// should close.
func (t *TextView) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.Keystroke() {
		case "esc", "q", "enter", "f1":
			return ActionClose{}, nil
		case "up", "k":
			t.scroll--
		case "down", "j":
			t.scroll++
		case "pgup":
			t.scroll -= 10
		case "pgdown":
			t.scroll += 10
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			t.scroll--
		case tea.MouseWheelDown:
			t.scroll++
		}
	}
	t.scroll = max(0, t.scroll)
	return nil, nil
}

// View renders the box centred in an appWidth x appHeight area.
func (t *TextView) View(appWidth, appHeight int) string {
	w, h := boxSize(appWidth, appHeight)
	innerW := max(10, w-4)
	bodyH := max(1, h-4) // border, title, divider

	maxScroll := max(0, len(t.lines)-bodyH)
	t.scroll = min(t.scroll, maxScroll)

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.colors.Dim))
	title := t.title
	switch {
	case t.scroll > 0 && t.scroll < maxScroll:
		title += " ↑↓"
	case t.scroll > 0:
		title += " ↑"
	case maxScroll > 0:
		title += " ↓"
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(title, innerW, "…")))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))

	end := min(t.scroll+bodyH, len(t.lines))
	for _, l := range t.lines[t.scroll:end] {
		sb.WriteByte('\n')
		sb.WriteString(padRight(ansi.Truncate(l, innerW, "…"), innerW))
	}
	for i := end - t.scroll; i < bodyH; i++ {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", innerW))
	}

	return frame(sb.String(), w, appWidth, appHeight, t.colors)
}
