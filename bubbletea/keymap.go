package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the report panel.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	NextFinding  key.Binding
	PrevFinding  key.Binding
	Toggle       key.Binding
	ExpandAll    key.Binding
	Rerun        key.Binding
	Cancel       key.Binding
	CopyLocation key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		NextFinding: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next finding"),
		),
		PrevFinding: key.NewBinding(
			key.WithKeys("p", "N"),
			key.WithHelp("p", "previous finding"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "tab", " "),
			key.WithHelp("enter", "toggle details"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand/collapse all"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("r", "f9"),
			key.WithHelp("r/F9", "check again"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel"),
		),
		CopyLocation: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy location"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
