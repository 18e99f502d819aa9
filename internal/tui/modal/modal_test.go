package modal

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

var testColors = Colors{Dim: "#666666", SelFg: "#ffffff", SelBg: "#444444", Border: "#555555"}

func fruits(query string) []Item {
	all := []Item{
		{Name: "apple", Value: "/f/apple"},
		{Name: "banana", Value: "/f/banana"},
		{Name: "cherry", Value: "/f/cherry"},
	}
	var out []Item
	for _, it := range all {
		if strings.Contains(it.Name, query) {
			out = append(out, it)
		}
	}
	return out
}

func key(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		return tea.KeyPressMsg{}
	}
}

func TestEscapeCloses(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	a, _ := m.HandleMsg(special("esc"))
	if _, ok := a.(ActionClose); !ok {
		t.Fatalf("expected ActionClose, got %T", a)
	}
}

func TestEnterSelectsFirst(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.Value != "/f/apple" {
		t.Fatalf("expected /f/apple, got %s", sel.Item.Value)
	}
}

func TestDownThenEnterSelectsHighlighted(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	m.HandleMsg(special("down")) // enter list, selected=0
	m.HandleMsg(special("down")) // selected=1
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	if sel.Item.Name != "banana" {
		t.Fatalf("expected banana, got %s", sel.Item.Name)
	}
}

func TestUpFromTopReturnsFocusToInput(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	m.HandleMsg(special("down"))
	if !m.inList {
		t.Fatal("expected inList=true")
	}
	m.HandleMsg(special("up"))
	if m.inList {
		t.Fatal("expected inList=false")
	}
}

func TestTypingProducesDebounceCmd(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	_, cmd := m.HandleMsg(key('a'))
	if cmd == nil {
		t.Fatal("expected debounce cmd")
	}
	if m.Query() != "a" {
		t.Fatalf("expected input 'a', got %q", m.Query())
	}
}

func TestDebounceFiresSearch(t *testing.T) {
	var queries []string
	searchFn := func(q string) []Item {
		queries = append(queries, q)
		return nil
	}
	m := New("open", "Open", searchFn, testColors)
	m.HandleMsg(key('x'))
	m.HandleMsg(debounceMsg{id: "open", seq: m.seq})
	if queries[len(queries)-1] != "x" {
		t.Fatalf("expected search for x, got %v", queries)
	}
}

func TestStaleDebounceIgnored(t *testing.T) {
	calls := 0
	searchFn := func(q string) []Item {
		if q != "" {
			calls++
		}
		return nil
	}
	m := New("open", "Open", searchFn, testColors)
	m.HandleMsg(key('a'))
	staleSeq := m.seq
	m.HandleMsg(key('b'))
	m.HandleMsg(debounceMsg{id: "open", seq: staleSeq})
	m.HandleMsg(debounceMsg{id: "other", seq: m.seq})
	if calls != 0 {
		t.Fatalf("expected 0 search calls for stale debounce, got %d", calls)
	}
}

func TestEnterUsesLatestQuery(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	m.HandleMsg(key('c'))
	m.HandleMsg(key('h'))
	// No debounce tick has arrived yet.
	a, _ := m.HandleMsg(special("enter"))
	sel, ok := a.(ActionSelect)
	if !ok || sel.Item.Name != "cherry" {
		t.Fatalf("expected cherry, got %#v", a)
	}
}

func TestEnterWithoutMatchSubmitsQuery(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	for _, r := range "/tmp/x.txt" {
		m.HandleMsg(key(r))
	}
	a, _ := m.HandleMsg(special("enter"))
	sub, ok := a.(ActionSubmit)
	if !ok {
		t.Fatalf("expected ActionSubmit, got %T", a)
	}
	if sub.Query != "/tmp/x.txt" {
		t.Errorf("Query = %q", sub.Query)
	}
}

func TestEmptyResultsEnterNoAction(t *testing.T) {
	m := New("tabs", "Switch", func(string) []Item { return nil }, testColors)
	a, _ := m.HandleMsg(special("enter"))
	if a != nil {
		t.Fatalf("expected nil action, got %T", a)
	}
}

func TestBackspaceRemovesChar(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	m.HandleMsg(key('a'))
	m.HandleMsg(key('b'))
	m.HandleMsg(special("backspace"))
	if m.Query() != "a" {
		t.Fatalf("expected 'a', got %q", m.Query())
	}
}

func TestPasteInsertsSingleLine(t *testing.T) {
	m := New("open", "Open", fruits, testColors)
	m.HandleMsg(tea.PasteMsg{Content: "src/\nmain.go"})
	if m.Query() != "src/main.go" {
		t.Fatalf("Query() = %q", m.Query())
	}
}

func TestViewRenders(t *testing.T) {
	m := New("open", "Open File", fruits, testColors)
	v := ansi.Strip(m.View(100, 40))
	for _, want := range []string{"Open File", "apple", "banana", "cherry"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if n := len(strings.Split(v, "\n")); n != 40 {
		t.Errorf("view has %d rows, want 40", n)
	}
}

func TestTextViewScrollAndClose(t *testing.T) {
	var lines []string
	for i := range 50 {
		lines = append(lines, strings.Repeat("x", i%7))
	}
	tv := NewTextView("Keys", strings.Join(lines, "\n"), testColors)
	tv.HandleMsg(special("up"))
	if tv.scroll != 0 {
		t.Errorf("scroll went negative: %d", tv.scroll)
	}
	tv.HandleMsg(special("down"))
	tv.HandleMsg(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if tv.scroll != 2 {
		t.Errorf("scroll = %d, want 2", tv.scroll)
	}
	if v := ansi.Strip(tv.View(80, 24)); !strings.Contains(v, "Keys") {
		t.Error("title missing from view")
	}
	a, _ := tv.HandleMsg(special("esc"))
	if _, ok := a.(ActionClose); !ok {
		t.Fatalf("expected ActionClose, got %T", a)
	}
}
