package app

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/tnguyen21/navshell/internal/navview"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Pane1", km.Pane1, []string{"1"}},
		{"Pane2", km.Pane2, []string{"2"}},
		{"Pane3", km.Pane3, []string{"3"}},
		{"Up", km.Up, []string{"k", "up"}},
		{"Down", km.Down, []string{"j", "down"}},
		{"Select", km.Select, []string{"enter"}},
		{"Back", km.Back, []string{"esc"}},
		{"Help", km.Help, []string{"?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKeys := tt.binding.Keys()
			if len(gotKeys) != len(tt.keys) {
				t.Fatalf("%s: got %d keys, want %d", tt.name, len(gotKeys), len(tt.keys))
			}
			for i, k := range tt.keys {
				if gotKeys[i] != k {
					t.Errorf("%s: key[%d] = %q, want %q", tt.name, i, gotKeys[i], k)
				}
			}
		})
	}
}

func TestPaneKeysOneToNine(t *testing.T) {
	km := DefaultKeyMap()
	for i, b := range km.pageKeys() {
		keys := b.Keys()
		if len(keys) != 1 {
			t.Fatalf("Pane%d: expected 1 key, got %d", i+1, len(keys))
		}
		expected := string(rune('1' + i))
		if keys[0] != expected {
			t.Errorf("Pane%d: key = %q, want %q", i+1, keys[0], expected)
		}
	}
}

// The shell must not claim keys the navigation view handles first.
func TestKeysDoNotShadowNavigation(t *testing.T) {
	km := DefaultKeyMap()
	nav := navview.DefaultKeyMap()
	navBindings := []key.Binding{nav.Menu, nav.Next, nav.Prev, nav.PaneUp, nav.PaneDown}

	app := []key.Binding{km.Quit, km.Up, km.Down, km.Select, km.Help}
	app = append(app, km.pageKeys()...)

	for _, a := range app {
		for _, ak := range a.Keys() {
			for _, n := range navBindings {
				for _, nk := range n.Keys() {
					if ak == nk {
						t.Errorf("key %q bound by both the shell and the navigation view", ak)
					}
				}
			}
		}
	}
}
