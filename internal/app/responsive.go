package app

// LayoutMode is the status bar's detail level for the terminal width. The
// navigation pane picks its own arrangement; this only trims the status bar.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // <40 chars: keys hint only
	LayoutMedium                   // 40-79: mode and keys
	LayoutWide                     // 80+: mode, menu label and keys
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	switch {
	case width < 40:
		return LayoutNarrow
	case width < 80:
		return LayoutMedium
	default:
		return LayoutWide
	}
}

// StatusBarHeight returns the height of the status bar (always 1 row).
func StatusBarHeight() int {
	return 1
}

// NavHeight returns the rows left to the navigation view after the status
// bar is subtracted from the total terminal height.
func NavHeight(totalHeight int) int {
	h := totalHeight - StatusBarHeight()
	if h < 0 {
		return 0
	}
	return h
}
