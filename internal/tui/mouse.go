package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: overlays first, then the menu, the tab bar and the editor.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.prompt != nil, m.picker != nil:
		return m, nil
	case m.textView != nil:
		mdl, cmd, _ := m.updateTextView(msg)
		return mdl, cmd
	}

	x, y := mouseXY(msg)

	// --- Menu bar and open drop-down -----------------------------------------
	if click, ok := msg.(tea.MouseClickMsg); ok {
		if action, handled := m.menu.HandleMouse(click, menuRow); handled {
			if action != "" {
				return m, m.dispatch(Action(action))
			}
			return m, nil
		}
	}
	if m.menu.IsOpen() {
		return m, nil
	}

	// --- Tab bar ------------------------------------------------------------
	if click, ok := msg.(tea.MouseClickMsg); ok && inRect(x, y, m.layout.tabs) {
		if click.Button == tea.MouseLeft {
			if i := m.tabAt(x); i >= 0 {
				m.tabs.Select(i)
			}
		}
		return m, nil
	}

	// --- Editor: clicks and wheel inside it, drags anywhere -----------------
	tab := m.tabs.Current()
	if tab == nil {
		return m, nil
	}
	switch msg.(type) {
	case tea.MouseClickMsg, tea.MouseWheelMsg:
		if !inRect(x, y, m.layout.editor) {
			return m, nil
		}
	}
	translated := m.translateMouse(msg, m.layout.editor.Min.X, m.layout.editor.Min.Y)
	var cmd tea.Cmd
	tab.Editor, cmd = tab.Editor.Update(translated)
	return m, cmd
}

// translateMouse offsets a mouse message's coordinates for child components.
func (m Model) translateMouse(msg tea.MouseMsg, offX, offY int) tea.Msg {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseMotionMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseReleaseMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseWheelMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	}
	return msg
}
