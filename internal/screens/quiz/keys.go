package quiz

import "charm.land/bubbles/v2/key"

// KeyMap holds the quiz screen bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Pick    key.Binding
	Submit  key.Binding
	Restart key.Binding
	Next    key.Binding
	Quit    key.Binding
}

var DefaultKeys = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Pick:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check answer")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}
