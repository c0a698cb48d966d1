package navview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/navshell/internal/l10n"
	"github.com/tnguyen21/navshell/internal/theme"
)

// Content is the page shown in the content area.
type Content interface {
	SetSize(w, h int)
	View() string
}

// ContextAware content receives the navigation context before every layout
// pass, so nested app bars can match the surrounding mode.
type ContextAware interface {
	SetNavContext(ctx ViewContext)
}

// Navigator is the host's back-stack.
type Navigator interface {
	CanPop() bool
	Pop() tea.Cmd
}

// Clip decides whether content is cut to its region.
type Clip uint8

const (
	ClipHardEdge Clip = iota
	ClipNone
)

// Shape frames the content region when it is clipped. Minimal mode never
// draws it.
type Shape struct {
	Border lipgloss.Border
	Top    bool
	Left   bool
	Color  lipgloss.TerminalColor
}

// DefaultShape rounds the top-left corner of the content region.
func DefaultShape() Shape {
	return Shape{
		Border: lipgloss.RoundedBorder(),
		Top:    true,
		Left:   true,
		Color:  theme.ColorMuted,
	}
}

func (s Shape) insets() (top, left int) {
	if s.Top && s.Border.Top != "" {
		top = 1
	}
	if s.Left && s.Border.Left != "" {
		left = 1
	}
	return top, left
}

// AppBar describes the bar above the pane and content.
type AppBar struct {
	Title   string
	Leading string // explicit leading control; replaces the back button
	// AutomaticallyImplyLeading adds a back button when the Navigator can pop.
	AutomaticallyImplyLeading bool
	Actions                   []string
}

// ItemKind distinguishes selectable entries from decoration rows.
type ItemKind uint8

const (
	ItemEntry ItemKind = iota
	ItemHeader
	ItemSeparator
)

// PaneItem is one row of the navigation pane.
type PaneItem struct {
	Kind     ItemKind
	Icon     string
	Title    string
	Badge    int
	Disabled bool
	// OnTap runs when the item is activated, before PaneSpec.OnChanged.
	OnTap func() tea.Cmd
}

func (it PaneItem) selectable() bool {
	return it.Kind == ItemEntry && !it.Disabled
}

// ItemContext is what an ItemBuilder gets to draw one row.
type ItemContext struct {
	Item      PaneItem
	Mode      DisplayMode
	Selected  bool
	Width     int  // 0 draws at natural width
	IconOnly  bool // compact rail
	Indicator string
	Theme     *theme.Theme
}

// ItemBuilder draws one pane row. The result is cut or padded to Width.
type ItemBuilder func(ctx ItemContext) string

// IndicatorBuilder draws the selection marker placed before an item.
type IndicatorBuilder func(mode DisplayMode, selected bool) string

// PaneSize holds pane widths in logical units. Zero fields use defaults.
type PaneSize struct {
	OpenWidth    int
	CompactWidth int
}

// Default pane widths in logical units.
const (
	DefaultOpenWidth    = 320
	DefaultCompactWidth = 48
)

func (s PaneSize) open() int {
	if s.OpenWidth <= 0 {
		return DefaultOpenWidth
	}
	return s.OpenWidth
}

func (s PaneSize) compact() int {
	if s.CompactWidth <= 0 {
		return DefaultCompactWidth
	}
	return s.CompactWidth
}

// PaneSpec describes the navigation pane. It belongs to the host and is
// read-only to the view.
type PaneSpec struct {
	DisplayMode DisplayMode
	Items       []PaneItem
	FooterItems []PaneItem
	Header      string
	SearchBox   string
	// Selected indexes Items followed by FooterItems; -1 selects nothing.
	Selected  int
	OnChanged func(index int) tea.Cmd
	// ScrollController, when set, replaces the view's own controller.
	ScrollController *ScrollController
	Indicator        IndicatorBuilder
	ItemBuilder      ItemBuilder
	Size             PaneSize
}

// item returns the flat-indexed item.
func (p *PaneSpec) item(i int) (PaneItem, bool) {
	switch {
	case i < 0:
		return PaneItem{}, false
	case i < len(p.Items):
		return p.Items[i], true
	case i < len(p.Items)+len(p.FooterItems):
		return p.FooterItems[i-len(p.Items)], true
	}
	return PaneItem{}, false
}

func (p *PaneSpec) count() int {
	return len(p.Items) + len(p.FooterItems)
}

// Config is the per-build configuration of a navigation view.
type Config struct {
	AppBar  *AppBar
	Pane    *PaneSpec // nil hides the pane entirely
	Content Content
	Clip    Clip
	Shape   Shape
}

// Env carries the host facilities the view draws with.
type Env struct {
	Theme     *theme.Theme
	Strings   l10n.Strings
	Navigator Navigator
	Metric    Metric
}

func (e Env) mustBeValid() {
	if e.Theme == nil {
		fatal(ErrInvalidHost, "no theme")
	}
	if e.Strings == nil {
		fatal(ErrInvalidHost, "no localized strings")
	}
}

// ViewContext is the read-only navigation state handed down to content.
type ViewContext struct {
	Mode            DisplayMode
	Arrangement     Arrangement
	OverlayOpen     bool
	CompactExpanded bool
	// PaneWidth is the current, possibly animating, app-bar inset in cells.
	PaneWidth int
}
