package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Action names one user-level command. Key bindings and menu items both
// resolve to an Action, and Model.dispatch performs it.
type Action string

const (
	ActNewTab   Action = "new-tab"
	ActOpen     Action = "open"
	ActSave     Action = "save"
	ActSaveAs   Action = "save-as"
	ActCloseTab Action = "close-tab"
	ActQuit     Action = "quit"

	ActCut       Action = "cut"
	ActCopy      Action = "copy"
	ActPaste     Action = "paste"
	ActSelectAll Action = "select-all"
	ActUndo      Action = "undo"
	ActRedo      Action = "redo"

	ActFind     Action = "find"
	ActFindNext Action = "find-next"

	ActTabCount    Action = "tab-count"
	ActShowChanges Action = "show-changes"

	ActCodeCleaner Action = "code-cleaner"

	ActLoadPlugin Action = "load-plugin"

	ActRecordStart Action = "record-start"
	ActRecordStop  Action = "record-stop"
	ActPlayMacro   Action = "play-macro"

	ActListTabs  Action = "list-tabs"
	ActSwitchTab Action = "switch-tab"
	ActNextTab   Action = "next-tab"
	ActPrevTab   Action = "prev-tab"

	ActMenu Action = "menu"
	ActHelp Action = "help"
)

// KeyMap holds the key binding of every action. Actions without a default
// shortcut are reachable from the menu only.
type KeyMap struct {
	NewTab   key.Binding
	Open     key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	CloseTab key.Binding
	Quit     key.Binding

	Cut       key.Binding
	Copy      key.Binding
	Paste     key.Binding
	SelectAll key.Binding
	Undo      key.Binding
	Redo      key.Binding

	Find     key.Binding
	FindNext key.Binding

	TabCount    key.Binding
	ShowChanges key.Binding
	CodeCleaner key.Binding
	LoadPlugin  key.Binding

	RecordStart key.Binding
	RecordStop  key.Binding
	PlayMacro   key.Binding

	ListTabs  key.Binding
	SwitchTab key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding

	Menu key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the Notepad++-flavoured default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NewTab:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new tab")),
		Open:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:   key.NewBinding(key.WithKeys("ctrl+alt+s", "f12"), key.WithHelp("f12", "save as")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),

		Cut:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Undo:      key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),

		Find:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		FindNext: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "find next")),

		TabCount:    key.NewBinding(key.WithHelp("", "show tab count")),
		ShowChanges: key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "unsaved changes")),
		CodeCleaner: key.NewBinding(key.WithHelp("", "trim trailing whitespace")),
		LoadPlugin:  key.NewBinding(key.WithHelp("", "load plugin")),

		RecordStart: key.NewBinding(key.WithKeys("f7"), key.WithHelp("f7", "record macro")),
		RecordStop:  key.NewBinding(key.WithKeys("f8"), key.WithHelp("f8", "stop recording")),
		PlayMacro:   key.NewBinding(key.WithKeys("f9"), key.WithHelp("f9", "play macro")),

		ListTabs:  key.NewBinding(key.WithHelp("", "list tabs")),
		SwitchTab: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch tab")),
		NextTab:   key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+right"), key.WithHelp("ctrl+pgdown", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("ctrl+pgup", "alt+left"), key.WithHelp("ctrl+pgup", "previous tab")),

		Menu: key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "menu")),
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys")),
	}
}

type actionBinding struct {
	action  Action
	binding key.Binding
}

// bindings lists every action with its binding, in menu order.
func (k KeyMap) bindings() []actionBinding {
	return []actionBinding{
		{ActNewTab, k.NewTab}, {ActOpen, k.Open}, {ActSave, k.Save}, {ActSaveAs, k.SaveAs},
		{ActCloseTab, k.CloseTab}, {ActQuit, k.Quit},
		{ActCut, k.Cut}, {ActCopy, k.Copy}, {ActPaste, k.Paste}, {ActSelectAll, k.SelectAll},
		{ActUndo, k.Undo}, {ActRedo, k.Redo},
		{ActFind, k.Find}, {ActFindNext, k.FindNext},
		{ActTabCount, k.TabCount}, {ActShowChanges, k.ShowChanges},
		{ActCodeCleaner, k.CodeCleaner},
		{ActLoadPlugin, k.LoadPlugin},
		{ActRecordStart, k.RecordStart}, {ActRecordStop, k.RecordStop}, {ActPlayMacro, k.PlayMacro},
		{ActListTabs, k.ListTabs}, {ActSwitchTab, k.SwitchTab}, {ActNextTab, k.NextTab}, {ActPrevTab, k.PrevTab},
		{ActMenu, k.Menu}, {ActHelp, k.Help},
	}
}

// Lookup resolves a key press to its action, or "" when unbound.
func (k KeyMap) Lookup(msg tea.KeyPressMsg) Action {
	for _, ab := range k.bindings() {
		if key.Matches(msg, ab.binding) {
			return ab.action
		}
	}
	return ""
}

// Binding returns the binding of a, or an empty binding.
func (k KeyMap) Binding(a Action) key.Binding {
	for _, ab := range k.bindings() {
		if ab.action == a {
			return ab.binding
		}
	}
	return key.Binding{}
}

// ShortHelp is the status-bar hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Open, k.Save, k.Find, k.Help}
}
