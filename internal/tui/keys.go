package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Undo      key.Binding
	Redo      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Cancel    key.Binding
	Left      key.Binding
	Right     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete selected")),
		Duplicate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/deselect")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier days")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later days")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Delete, k.Cancel, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Undo, k.Redo, k.Delete, k.Duplicate},
		{k.Left, k.Right, k.Cancel},
		{k.Help, k.Quit},
	}
}
