package sim

import "github.com/charmbracelet/bubbles/key"

// keyMap binds terminal keys to the four panel buttons.
type keyMap struct {
	ButtonA key.Binding
	ButtonB key.Binding
	ButtonX key.Binding
	ButtonY key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ButtonA: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "button A"),
		),
		ButtonB: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "button B"),
		),
		ButtonX: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "button X"),
		),
		ButtonY: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "button Y"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
