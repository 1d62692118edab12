package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Panic  key.Binding
	Async  key.Binding
	Log    key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit newest")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete newest")),
		Panic:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "panic")),
		Async:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "failing task")),
		Log:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "error log")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Delete, k.Panic, k.Async, k.Log, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Edit, k.Delete},
		{k.Panic, k.Async, k.Log},
		{k.Quit},
	}
}
