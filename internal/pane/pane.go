package pane

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tnguyen21/navshell/internal/theme"
)

// PaneID identifies each page of the shell.
type PaneID int

const (
	PaneHome PaneID = iota
	PaneActivity
	PaneSettings
)

// Pane is the interface that all pages implement.
type Pane interface {
	tea.Model
	ID() PaneID
	Title() string      // full title for the open pane (e.g., "Home")
	ShortTitle() string // icon for the compact rail (e.g., "⌂")
	Badge() int         // notification count (0 = hidden)
	SetSize(w, h int)   // called on resize
}

// RestoreMsg is sent to a page when the back-stack returns to it. Topic is
// the sub-route the page showed when it was left.
type RestoreMsg struct {
	ID    PaneID
	Topic string
}

// TruncateWithEllipsis truncates s to maxLen cells, appending "…" if
// truncated. If maxLen < 1, returns an empty string.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// FormatAge formats a duration as a human-readable age string.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// EventStyle maps a navigation event kind to the style it is listed in.
func EventStyle(kind EventKind) lipgloss.Style {
	switch kind {
	case EventModeChanged:
		return theme.AccentStyle
	case EventOverlayOpened, EventOverlayClosed:
		return theme.WarnStyle
	case EventSelection:
		return theme.PassStyle
	case EventBack:
		return theme.FailStyle
	default:
		return theme.MutedStyle
	}
}

// centerPad centers s within width using spaces.
func centerPad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return fmt.Sprintf("%*s%s", left, "", s)
}
