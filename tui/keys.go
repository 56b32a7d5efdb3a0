package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the admin panel key bindings.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding

	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Seed    key.Binding
	Refresh key.Binding
	Verify  key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Submit  key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("S-tab", "prev tab")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓", "down")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Seed:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seed")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Verify:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify admin")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
