package navview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keys the navigation view handles itself. Hosts that
// route keys through HandleKey should not bind these elsewhere.
type KeyMap struct {
	Menu     key.Binding
	Dismiss  key.Binding
	Back     key.Binding
	Next     key.Binding
	Prev     key.Binding
	PaneUp   key.Binding
	PaneDown key.Binding
}

// DefaultKeyMap returns the default navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Menu: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "menu"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "alt+left"),
			key.WithHelp("backspace", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev page"),
		),
		PaneUp: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "scroll pane up"),
		),
		PaneDown: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "scroll pane down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Next, k.Back}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu, k.Dismiss, k.Back},
		{k.Next, k.Prev},
		{k.PaneUp, k.PaneDown},
	}
}

var _ help.KeyMap = KeyMap{}
