package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevPage   key.Binding
	NextPage   key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	CycleChat  key.Binding
	CycleUser  key.Binding
	ToggleOrig key.Binding
	Copy       key.Binding
	ScrollUp   key.Binding
	ScrollDn   key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	PrevPage: key.NewBinding(
		key.WithKeys("left", "pgup"),
		key.WithHelp("left", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "pgdown"),
		key.WithHelp("right", "next page"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("ctrl+n", "down"),
		key.WithHelp("C-n", "next hit"),
	),
	PrevMatch: key.NewBinding(
		key.WithKeys("ctrl+p", "up"),
		key.WithHelp("C-p", "prev hit"),
	),
	CycleChat: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle chat"),
	),
	CycleUser: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "cycle sender"),
	),
	ToggleOrig: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "original text"),
	),
	Copy: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy hit"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "scroll up"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}
