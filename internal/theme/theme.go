package theme

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Ayu color palette. AdaptiveColor picks the light or dark variant.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}

	colorChrome = lipgloss.AdaptiveColor{Light: "#e7e8e9", Dark: "#1f2430"}
	colorPane   = lipgloss.AdaptiveColor{Light: "#f3f4f5", Dark: "#191e2a"}
)

// Semantic text styles.
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// StatusBarStyle for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Background(colorChrome).
	Foreground(ColorMuted).
	Padding(0, 1)

// PageHeaderStyle for page titles inside the content area.
var PageHeaderStyle = lipgloss.NewStyle().
	Foreground(ColorAccent).
	Bold(true)

// Curve maps animation progress in [0, 1] to eased progress in [0, 1].
type Curve func(t float64) float64

// Animation curves.
var (
	Linear Curve = func(t float64) float64 { return t }

	EaseOut Curve = func(t float64) float64 {
		u := 1 - t
		return 1 - u*u*u
	}

	EaseInOut Curve = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	}
)

// ParseCurve returns the curve registered under name.
func ParseCurve(name string) (Curve, error) {
	switch name {
	case "", "ease_in_out":
		return EaseInOut, nil
	case "ease_out":
		return EaseOut, nil
	case "linear":
		return Linear, nil
	}
	return nil, fmt.Errorf("unknown animation curve %q", name)
}

// Animation holds transition timings for the navigation chrome.
type Animation struct {
	Pane    time.Duration // pane width and app-bar inset transitions
	Overlay time.Duration // minimal pane enter/exit
	Curve   Curve
}

// Theme groups the styles the navigation view draws its chrome with.
type Theme struct {
	AppBar       lipgloss.Style
	AppBarTitle  lipgloss.Style
	AppBarAction lipgloss.Style
	Leading      lipgloss.Style

	Pane         lipgloss.Style
	PaneHeader   lipgloss.Style
	SearchBox    lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDisabled lipgloss.Style
	ItemHeader   lipgloss.Style
	Separator    lipgloss.Style
	Indicator    lipgloss.Style
	Badge        lipgloss.Style

	// Floating panes: the minimal overlay and the expanded compact pane.
	Flyout  lipgloss.Style
	Barrier lipgloss.Style

	Animation Animation
}

// Default returns the Ayu-based theme.
func Default() *Theme {
	return &Theme{
		AppBar: lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(ColorMuted),
		AppBarTitle: lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(ColorAccent).
			Bold(true),
		AppBarAction: lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(ColorMuted).
			Padding(0, 1),
		Leading: lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(ColorAccent).
			Padding(0, 1),

		Pane: lipgloss.NewStyle().
			Background(colorPane),
		PaneHeader: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1),
		SearchBox: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ItemSelected: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		ItemDisabled: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true),
		ItemHeader: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Bold(true).
			Padding(0, 1),
		Separator: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Indicator: lipgloss.NewStyle().
			Foreground(ColorAccent),
		Badge: lipgloss.NewStyle().
			Foreground(ColorWarn),

		Flyout: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Background(colorPane),
		Barrier: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true),

		Animation: Animation{
			Pane:    200 * time.Millisecond,
			Overlay: 167 * time.Millisecond,
			Curve:   EaseInOut,
		},
	}
}
