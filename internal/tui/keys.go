package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the session's key bindings. Bindings that clash with text
// entry (q, ?, tab, digits, j/k) are only consulted outside editing mode.
type keyMap struct {
	Quit       key.Binding
	Escape     key.Binding
	Help       key.Binding
	NextScreen key.Binding
	Search     key.Binding
	Register   key.Binding
	Settings   key.Binding
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextScreen: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		Search: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "search"),
		),
		Register: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "register"),
		),
		Settings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "e"),
			key.WithHelp("i", "edit"),
		),
	}
}
