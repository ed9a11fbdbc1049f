package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"daylist/internal/config"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Undo       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	CycleSort  key.Binding
	Search     key.Binding
	TrashView  key.Binding
	Restore    key.Binding
	EmptyTrash key.Binding
	Help       key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		Down:       key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		Add:        key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add task")),
		Toggle:     key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp("space", "toggle done")),
		Delete:     key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Undo:       key.NewBinding(key.WithKeys(k.Undo), key.WithHelp(k.Undo, "undo delete")),
		MoveUp:     key.NewBinding(key.WithKeys(k.MoveUp), key.WithHelp(k.MoveUp, "move up")),
		MoveDown:   key.NewBinding(key.WithKeys(k.MoveDown), key.WithHelp(k.MoveDown, "move down")),
		CycleSort:  key.NewBinding(key.WithKeys(k.CycleSort), key.WithHelp(k.CycleSort, "cycle sort")),
		Search:     key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		TrashView:  key.NewBinding(key.WithKeys(k.TrashView), key.WithHelp(k.TrashView, "trash")),
		Restore:    key.NewBinding(key.WithKeys(k.Restore), key.WithHelp(k.Restore, "restore")),
		EmptyTrash: key.NewBinding(key.WithKeys(k.EmptyTrash), key.WithHelp(k.EmptyTrash, "empty trash")),
		Help:       key.NewBinding(key.WithKeys(k.Help), key.WithHelp(k.Help, "help")),
		Cancel:     key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Quit:       key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Undo, k.CycleSort, k.Search, k.TrashView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Toggle, k.Delete, k.Undo},
		{k.CycleSort, k.Search, k.TrashView, k.Restore, k.EmptyTrash},
		{k.Help, k.Cancel, k.Quit},
	}
}
