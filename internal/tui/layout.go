package tui

import "image"

// Fixed rows: menu bar on top, tab bar below it, status line at the bottom.
const (
	menuRow    = 0
	tabRow     = 1
	editorTop  = 2
	statusRows = 1
)

// layout holds the screen rectangles of each region.
type layout struct {
	menu   image.Rectangle
	tabs   image.Rectangle
	editor image.Rectangle
	status image.Rectangle
}

func generateLayout(width, height int) layout {
	editorH := max(0, height-editorTop-statusRows)
	return layout{
		menu:   image.Rect(0, menuRow, width, menuRow+1),
		tabs:   image.Rect(0, tabRow, width, tabRow+1),
		editor: image.Rect(0, editorTop, width, editorTop+editorH),
		status: image.Rect(0, editorTop+editorH, width, editorTop+editorH+statusRows),
	}
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}
