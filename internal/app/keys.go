package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shell's own keybindings. Navigation keys (menu, pane
// stepping, dismiss) belong to the navigation view and are routed there
// first; see navview.KeyMap.
type KeyMap struct {
	Quit   key.Binding
	Pane1  key.Binding
	Pane2  key.Binding
	Pane3  key.Binding
	Pane4  key.Binding
	Pane5  key.Binding
	Pane6  key.Binding
	Pane7  key.Binding
	Pane8  key.Binding
	Pane9  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Pane1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "page 1"),
		),
		Pane2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "page 2"),
		),
		Pane3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "page 3"),
		),
		Pane4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "page 4"),
		),
		Pane5: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "page 5"),
		),
		Pane6: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "page 6"),
		),
		Pane7: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "page 7"),
		),
		Pane8: key.NewBinding(
			key.WithKeys("8"),
			key.WithHelp("8", "page 8"),
		),
		Pane9: key.NewBinding(
			key.WithKeys("9"),
			key.WithHelp("9", "page 9"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// pageKeys lists the direct page bindings in order.
func (k KeyMap) pageKeys() []key.Binding {
	return []key.Binding{
		k.Pane1, k.Pane2, k.Pane3, k.Pane4, k.Pane5,
		k.Pane6, k.Pane7, k.Pane8, k.Pane9,
	}
}
