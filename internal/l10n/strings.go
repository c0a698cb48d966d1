// Package l10n resolves the user-visible strings of the navigation chrome.
package l10n

// Key identifies a localized string.
type Key string

const (
	OpenNavigation      Key = "open_navigation"
	CloseNavigation     Key = "close_navigation"
	ModalBarrierDismiss Key = "modal_barrier_dismiss"
	BackButtonTooltip   Key = "back_button_tooltip"
	ExpandPane          Key = "expand_pane"
)

// Strings looks up display strings by key.
type Strings interface {
	Lookup(key Key) string
}

var english = map[Key]string{
	OpenNavigation:      "Open Navigation",
	CloseNavigation:     "Close Navigation",
	ModalBarrierDismiss: "Dismiss",
	BackButtonTooltip:   "Back",
	ExpandPane:          "Expand",
}

// Table is a Strings backed by a map. Keys missing from the map fall back
// to English, then to the key itself.
type Table map[Key]string

// Lookup implements Strings.
func (t Table) Lookup(key Key) string {
	if s, ok := t[key]; ok && s != "" {
		return s
	}
	if s, ok := english[key]; ok {
		return s
	}
	return string(key)
}

// English returns the built-in English strings.
func English() Table {
	return Table{}
}

// WithOverrides returns a table that prefers overrides and falls back to
// English. Unknown keys in overrides are kept so hosts can add their own.
func WithOverrides(overrides map[string]string) Table {
	t := make(Table, len(overrides))
	for k, v := range overrides {
		t[Key(k)] = v
	}
	return t
}
