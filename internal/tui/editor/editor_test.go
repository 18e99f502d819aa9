package editor

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func newTestEditor(t *testing.T, content string, w, h int) Model {
	t.Helper()
	ed := New()
	ed.Clipboard = &MemoryClipboard{}
	ed.SetValue(content)
	ed.SetWidth(w)
	ed.SetHeight(h)
	ed.Focus()
	return ed
}

func press(ed Model, keys ...tea.KeyPressMsg) Model {
	for _, k := range keys {
		ed, _ = ed.Update(k)
	}
	return ed
}

func typeText(ed Model, s string) Model {
	for _, r := range s {
		ed, _ = ed.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return ed
}

var (
	keyEnter     = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab       = tea.KeyPressMsg{Code: tea.KeyTab}
	keyBackspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
	keyDelete    = tea.KeyPressMsg{Code: tea.KeyDelete}
	keyLeft      = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyRight     = tea.KeyPressMsg{Code: tea.KeyRight}
	keyDown      = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnd       = tea.KeyPressMsg{Code: tea.KeyEnd}
	keyShiftRt   = tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift}
)

func TestSetValuePreservesContent(t *testing.T) {
	for _, content := range []string{
		"",
		"one line",
		"a\nb\nc",
		"trailing newline\n",
		"\n\nblank lines\n\n",
		"tabs\tand üñíçødé 世界",
	} {
		ed := New()
		ed.SetValue(content)
		if got := ed.Value(); got != content {
			t.Errorf("Value() = %q, want %q", got, content)
		}
		if ed.Modified() {
			t.Errorf("SetValue(%q) left the buffer modified", content)
		}
	}
}

func TestGutterWidth(t *testing.T) {
	cases := []struct {
		lines int
		want  int
	}{
		{1, 2}, {9, 2}, {10, 3}, {99, 3}, {100, 4}, {1000, 5},
	}
	for _, tc := range cases {
		ed := New()
		ed.SetValue(strings.Repeat("\n", tc.lines-1))
		if got := ed.GutterWidth(); got != tc.want {
			t.Errorf("%d lines: GutterWidth() = %d, want %d", tc.lines, got, tc.want)
		}
	}

	ed := New()
	ed.ShowLineNumbers = false
	if got := ed.GutterWidth(); got != 0 {
		t.Errorf("hidden gutter width = %d, want 0", got)
	}
}

func TestViewDimensions(t *testing.T) {
	content := "\t\tindented := true\nwide: 世界世界世界世界世界世界世界世界\n" +
		strings.Repeat("x", 200) + "\n\n\tend"
	for _, size := range [][2]int{{40, 10}, {20, 3}, {80, 24}} {
		ed := newTestEditor(t, content, size[0], size[1])
		ed.Language = "go"
		ed.SyntaxTheme = "monokai"
		ed.Colors = Colors{Bg: "#101010", Fg: "#eeeeee", CurrentLine: "#202020"}
		ed = press(ed, keyDown, keyEnd)

		lines := strings.Split(ed.View(), "\n")
		if len(lines) != size[1] {
			t.Fatalf("%dx%d: got %d rows", size[0], size[1], len(lines))
		}
		for i, line := range lines {
			if w := ansi.StringWidth(line); w != size[0] {
				t.Errorf("%dx%d row %d: width %d", size[0], size[1], i, w)
			}
		}
	}
}

func TestGutterFollowsScroll(t *testing.T) {
	var lines []string
	for i := 1; i <= 12; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	ed := New()
	ed.SetValue(strings.Join(lines, "\n"))
	ed.SetWidth(14)
	ed.SetHeight(4)
	ed.SetCursor(11, 0)

	if got := ed.ScrollOffset(); got != 8 {
		t.Fatalf("ScrollOffset() = %d, want 8", got)
	}
	golden.RequireEqual(t, []byte(ansi.Strip(ed.View())))
}

func TestGutterRightAligned(t *testing.T) {
	ed := newTestEditor(t, strings.Repeat("x\n", 10)+"x", 10, 11)
	ed.Blur()
	rows := strings.Split(ansi.Strip(ed.View()), "\n")
	if !strings.HasPrefix(rows[0], " 1 x") {
		t.Errorf("row 0 = %q, want right-aligned number", rows[0])
	}
	if !strings.HasPrefix(rows[10], "11 x") {
		t.Errorf("row 10 = %q", rows[10])
	}
}

func TestGutterBlankPastEnd(t *testing.T) {
	ed := newTestEditor(t, "one\ntwo\nthree", 12, 6)
	gw := ed.GutterWidth()
	rows := strings.Split(ansi.Strip(ed.View()), "\n")
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got := rows[i][:gw]; strings.TrimRight(got, " ") != want {
			t.Errorf("row %d gutter = %q, want %q", i, got, want)
		}
	}
	for i := 3; i < 6; i++ {
		if rows[i] != strings.Repeat(" ", 12) {
			t.Errorf("row %d = %q, want a blank row", i, rows[i])
		}
		if strings.ContainsAny(rows[i][:gw], "0123456789") {
			t.Errorf("row %d gutter shows a number: %q", i, rows[i][:gw])
		}
	}
}

func TestCurrentLineHighlight(t *testing.T) {
	colors := Colors{Bg: "#000000", Fg: "#ffffff", CurrentLine: "#334455"}

	render := func(highlight, readOnly bool) []string {
		ed := newTestEditor(t, "first\nsecond", 20, 2)
		ed.Blur()
		ed.Colors = colors
		ed.HighlightCurrentLine = highlight
		ed.ReadOnly = readOnly
		return strings.Split(ed.View(), "\n")
	}

	on := render(true, false)
	off := render(false, false)
	if on[0] == off[0] {
		t.Error("cursor row should render differently with the highlight on")
	}
	if on[1] != off[1] {
		t.Error("non-cursor rows must not be affected by the highlight")
	}
	if ansi.Strip(on[0]) != ansi.Strip(off[0]) {
		t.Error("highlight must not change the text")
	}

	ro := render(true, true)
	if ro[0] != off[0] {
		t.Error("read-only editors must not highlight the current line")
	}
}

func TestTypingAndTabIndent(t *testing.T) {
	ed := newTestEditor(t, "", 40, 5)
	ed = typeText(ed, "func f() {")
	ed = press(ed, keyEnter, keyTab)
	ed = typeText(ed, "x")
	ed = press(ed, keyEnter, keyTab)
	ed = typeText(ed, "y")
	if got, want := ed.Value(), "func f() {\n\tx\n\ty"; got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
	if !ed.Modified() {
		t.Error("typing should mark the buffer modified")
	}

	// Spaces on the line above are copied as-is.
	ed.SetValue("    a\n")
	ed.SetCursor(1, 0)
	ed = press(ed, keyTab)
	if got := ed.Value(); got != "    a\n    " {
		t.Errorf("Value() = %q", got)
	}
}

func TestBackspaceAndDeleteJoinLines(t *testing.T) {
	ed := newTestEditor(t, "ab\ncd", 40, 5)
	ed.SetCursor(1, 0)
	ed = press(ed, keyBackspace)
	if got := ed.Value(); got != "abcd" {
		t.Fatalf("after backspace: %q", got)
	}
	if r, c := ed.Cursor(); r != 0 || c != 2 {
		t.Errorf("cursor = (%d,%d), want (0,2)", r, c)
	}

	ed.SetValue("ab\ncd")
	ed.SetCursor(0, 2)
	ed = press(ed, keyDelete)
	if got := ed.Value(); got != "abcd" {
		t.Errorf("after delete: %q", got)
	}

	ed.SetValue("x")
	ed = press(ed, keyBackspace)
	if ed.Modified() {
		t.Error("backspace at buffer start must not mark the buffer modified")
	}
}

func TestUndoRedo(t *testing.T) {
	ed := newTestEditor(t, "", 40, 5)
	ed = typeText(ed, "ab")
	ed = press(ed, keyLeft)
	ed = typeText(ed, "X")
	if got := ed.Value(); got != "aXb" {
		t.Fatalf("Value() = %q", got)
	}

	if !ed.Undo() || ed.Value() != "ab" {
		t.Fatalf("first undo: %q", ed.Value())
	}
	if !ed.Undo() || ed.Value() != "" {
		t.Fatalf("second undo: %q", ed.Value())
	}
	if ed.Modified() {
		t.Error("undoing back to the loaded state should clear Modified")
	}
	if ed.Undo() {
		t.Error("undo with empty history should report false")
	}

	if !ed.Redo() || ed.Value() != "ab" {
		t.Fatalf("redo: %q", ed.Value())
	}
	if !ed.Modified() {
		t.Error("redo should mark the buffer modified again")
	}

	ed = typeText(ed, "c")
	if ed.CanRedo() {
		t.Error("a new edit must clear the redo stack")
	}
}

func TestMarkSaved(t *testing.T) {
	ed := newTestEditor(t, "a", 40, 5)
	ed = typeText(ed, "b")
	ed.MarkSaved()
	if ed.Modified() {
		t.Error("MarkSaved should clear Modified")
	}
	ed.Undo()
	if !ed.Modified() {
		t.Error("undo past the save point should set Modified")
	}
}

func TestSelectionClipboard(t *testing.T) {
	ed := newTestEditor(t, "hello world", 40, 5)
	ed = press(ed, keyShiftRt, keyShiftRt, keyShiftRt, keyShiftRt, keyShiftRt)
	if got := ed.SelectedText(); got != "hello" {
		t.Fatalf("SelectedText() = %q", got)
	}

	if ok, err := ed.Cut(); !ok || err != nil {
		t.Fatalf("Cut() = %v, %v", ok, err)
	}
	if got := ed.Value(); got != " world" {
		t.Fatalf("after cut: %q", got)
	}

	ed = press(ed, keyEnd)
	if ok, err := ed.Paste(); !ok || err != nil {
		t.Fatalf("Paste() = %v, %v", ok, err)
	}
	if got := ed.Value(); got != " worldhello" {
		t.Errorf("after paste: %q", got)
	}

	ed.SelectAll()
	if ok, _ := ed.Copy(); !ok {
		t.Fatal("Copy with selection should succeed")
	}
	text, _ := ed.Clipboard.ReadAll()
	if text != " worldhello" {
		t.Errorf("clipboard = %q", text)
	}

	ed.ClearSelection()
	if ok, _ := ed.Copy(); ok {
		t.Error("Copy without selection should report false")
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	ed := newTestEditor(t, "one\ntwo\nthree", 40, 5)
	ed.Select(0, 1, 2, 2)
	if got := ed.SelectedText(); got != "ne\ntwo\nth" {
		t.Fatalf("SelectedText() = %q", got)
	}
	ed = typeText(ed, "-")
	if got := ed.Value(); got != "o-ree" {
		t.Errorf("Value() = %q", got)
	}
}

func TestFindWraps(t *testing.T) {
	ed := newTestEditor(t, "foo bar\nbaz foo\nqux", 40, 5)

	if !ed.Find("foo") {
		t.Fatal("expected a match")
	}
	if r, c := ed.Cursor(); r != 0 || c != 3 {
		t.Errorf("first match cursor = (%d,%d), want (0,3)", r, c)
	}
	if !ed.Find("foo") {
		t.Fatal("expected a second match")
	}
	if r, c := ed.Cursor(); r != 1 || c != 7 {
		t.Errorf("second match cursor = (%d,%d), want (1,7)", r, c)
	}
	if !ed.Find("foo") {
		t.Fatal("expected wrap-around")
	}
	if r, _ := ed.Cursor(); r != 0 {
		t.Errorf("wrapped match row = %d, want 0", r)
	}
	if got := ed.SelectedText(); got != "foo" {
		t.Errorf("SelectedText() = %q", got)
	}

	// The search starts at the cursor once the selection is gone.
	ed.SetCursor(1, 0)
	if !ed.Find("foo") {
		t.Fatal("expected a match after the cursor")
	}
	if r, c := ed.Cursor(); r != 1 || c != 7 {
		t.Errorf("match from cursor = (%d,%d), want (1,7)", r, c)
	}

	if ed.Find("absent") {
		t.Error("unexpected match")
	}
	if ed.Find("") {
		t.Error("empty query must not match")
	}
	if got := ed.CountMatches("foo"); got != 2 {
		t.Errorf("CountMatches = %d", got)
	}
}

func TestTrimTrailingWhitespace(t *testing.T) {
	ed := newTestEditor(t, "a  \nb\t\nc\n   ", 40, 5)
	ed.SetCursor(3, 3)
	if n := ed.TrimTrailingWhitespace(); n != 3 {
		t.Errorf("changed %d lines, want 3", n)
	}
	if got := ed.Value(); got != "a\nb\nc\n" {
		t.Errorf("Value() = %q", got)
	}
	if r, c := ed.Cursor(); r != 3 || c != 0 {
		t.Errorf("cursor = (%d,%d), want clamped to (3,0)", r, c)
	}
	ed.Undo()
	if got := ed.Value(); got != "a  \nb\t\nc\n   " {
		t.Errorf("undo trim: %q", got)
	}
	if n := ed.TrimTrailingWhitespace(); n != 3 {
		t.Errorf("second trim changed %d", n)
	}
	if n := ed.TrimTrailingWhitespace(); n != 0 {
		t.Errorf("idempotent trim changed %d", n)
	}
}

func TestReadOnlyIgnoresEdits(t *testing.T) {
	ed := newTestEditor(t, "fixed", 40, 5)
	ed.ReadOnly = true
	ed = typeText(ed, "zzz")
	ed = press(ed, keyBackspace, keyEnter)
	ed.InsertText("more")
	if ok, _ := ed.Paste(); ok {
		t.Error("paste into read-only buffer")
	}
	if got := ed.Value(); got != "fixed" {
		t.Errorf("Value() = %q", got)
	}
	if ed.Modified() {
		t.Error("read-only buffer became modified")
	}
	ed = press(ed, keyRight)
	if _, c := ed.Cursor(); c != 1 {
		t.Error("navigation should still work in read-only mode")
	}
}

func TestMouseClickAndDrag(t *testing.T) {
	ed := newTestEditor(t, "alpha\nbeta\ngamma", 20, 5)
	gw := ed.GutterWidth()

	ed, _ = ed.Update(tea.MouseClickMsg{X: gw + 2, Y: 1, Button: tea.MouseLeft})
	if r, c := ed.Cursor(); r != 1 || c != 2 {
		t.Fatalf("cursor after click = (%d,%d), want (1,2)", r, c)
	}

	ed, _ = ed.Update(tea.MouseMotionMsg{X: gw + 3, Y: 2, Button: tea.MouseLeft})
	ed, _ = ed.Update(tea.MouseReleaseMsg{X: gw + 3, Y: 2, Button: tea.MouseLeft})
	if got := ed.SelectedText(); got != "ta\ngam" {
		t.Errorf("drag selection = %q", got)
	}

	// A click past the end of a line lands at the line end.
	ed, _ = ed.Update(tea.MouseClickMsg{X: 19, Y: 0, Button: tea.MouseLeft})
	ed, _ = ed.Update(tea.MouseReleaseMsg{X: 19, Y: 0, Button: tea.MouseLeft})
	if r, c := ed.Cursor(); r != 0 || c != 5 {
		t.Errorf("cursor = (%d,%d), want (0,5)", r, c)
	}
	if ed.HasSelection() {
		t.Error("a click without drag must not leave a selection")
	}
}

func TestDragEndsWhenSelectionCleared(t *testing.T) {
	for _, tc := range []struct {
		name  string
		clear func(Model) Model
	}{
		{"arrow key", func(ed Model) Model { return press(ed, keyLeft) }},
		{"typing", func(ed Model) Model { return typeText(ed, "x") }},
		{"undo", func(ed Model) Model {
			ed = typeText(ed, "x")
			ed.Undo()
			return ed
		}},
		{"set cursor", func(ed Model) Model {
			ed.SetCursor(0, 0)
			return ed
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ed := newTestEditor(t, "alpha\nbeta\ngamma", 20, 5)
			gw := ed.GutterWidth()
			ed, _ = ed.Update(tea.MouseClickMsg{X: gw + 2, Y: 1, Button: tea.MouseLeft})
			ed = tc.clear(ed)
			r, c := ed.Cursor()

			ed, _ = ed.Update(tea.MouseMotionMsg{X: gw + 4, Y: 2, Button: tea.MouseLeft})
			if ed.HasSelection() {
				t.Errorf("motion after the drag ended selected %q", ed.SelectedText())
			}
			if r2, c2 := ed.Cursor(); r2 != r || c2 != c {
				t.Errorf("cursor moved to (%d,%d), want (%d,%d)", r2, c2, r, c)
			}
		})
	}
}

func TestClickOnNarrowPaneWithoutGutter(t *testing.T) {
	ed := newTestEditor(t, "abc", 2, 1)
	if ed.GutterWidth() < 2 {
		t.Fatalf("GutterWidth() = %d, want it to fill the pane", ed.GutterWidth())
	}
	ed, _ = ed.Update(tea.MouseClickMsg{X: 1, Y: 0, Button: tea.MouseLeft})
	ed, _ = ed.Update(tea.MouseReleaseMsg{X: 1, Y: 0, Button: tea.MouseLeft})
	if r, c := ed.Cursor(); r != 0 || c != 1 {
		t.Errorf("cursor = (%d,%d), want (0,1)", r, c)
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	ed := newTestEditor(t, strings.Repeat("x\n", 49)+"x", 20, 10)
	ed, _ = ed.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if got := ed.ScrollOffset(); got != 3 {
		t.Errorf("scroll after wheel down = %d, want 3", got)
	}
	for range 30 {
		ed, _ = ed.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	}
	if got := ed.ScrollOffset(); got != 40 {
		t.Errorf("scroll clamped = %d, want 40", got)
	}
	ed, _ = ed.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if got := ed.ScrollOffset(); got != 37 {
		t.Errorf("scroll after wheel up = %d, want 37", got)
	}
}

func TestHorizontalScroll(t *testing.T) {
	ed := newTestEditor(t, "0123456789abcdefghij", 10, 1)
	ed = press(ed, keyEnd)
	row := ansi.Strip(ed.View())
	if !strings.Contains(row, "fghij") {
		t.Errorf("view %q should show the line end", row)
	}
	if strings.Contains(row, "0123") {
		t.Errorf("view %q should have scrolled past the line start", row)
	}
}

func TestExpandTabs(t *testing.T) {
	ed := New()
	cases := []struct {
		in   string
		want int
	}{
		{"\thello", 4 + 5},
		{"\t\thello", 4 + 4 + 5},
		{"ab\tc", 2 + 2 + 1},
		{"no tabs", 7},
	}
	for _, tc := range cases {
		if got := ansi.StringWidth(ed.expandTabs(tc.in)); got != tc.want {
			t.Errorf("expandTabs(%q) width=%d, want %d", tc.in, got, tc.want)
		}
	}

	ed.TabWidth = 8
	if got := ed.expandTabs("\tx"); got != "        x" {
		t.Errorf("tab width 8: %q", got)
	}
}

func TestCellMapping(t *testing.T) {
	ed := New()
	ed.SetValue("a\tb世c")
	// a=0, tab=1..3, b=4, 世=5..6, c=7
	for cell, want := range map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 5: 3, 6: 3, 7: 4, 99: 5} {
		if got := ed.cellToBufferCol(0, cell); got != want {
			t.Errorf("cellToBufferCol(%d) = %d, want %d", cell, got, want)
		}
	}
	if got := ed.bufferColToCell(0, 4); got != 7 {
		t.Errorf("bufferColToCell(4) = %d, want 7", got)
	}
}
