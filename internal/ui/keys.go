package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the board key bindings.
type KeyMap struct {
	Focus     key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Enter     key.Binding
	Cancel    key.Binding
	Timer     key.Binding
	Stop      key.Binding
	Delete    key.Binding
	Important key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Timer:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/pause")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Important: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "important")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Timer, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Up, k.Down, k.Enter, k.Cancel},
		{k.Toggle, k.Edit, k.Delete, k.Important},
		{k.Timer, k.Stop, k.Help, k.Quit},
	}
}
