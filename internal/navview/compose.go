package navview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/navshell/internal/overlay"
	"github.com/tnguyen21/navshell/internal/theme"
)

// Arrangement is one of the fixed ways of placing app bar, pane and content.
type Arrangement uint8

const (
	ArrangeNone Arrangement = iota // no pane
	ArrangeTop
	ArrangeCompact
	ArrangeOpen
	ArrangeMinimal
)

func (a Arrangement) String() string {
	switch a {
	case ArrangeNone:
		return "none"
	case ArrangeTop:
		return "top"
	case ArrangeCompact:
		return "compact"
	case ArrangeOpen:
		return "open"
	case ArrangeMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("Arrangement(%d)", a)
	}
}

// PaneKind is how the inline pane is drawn.
type PaneKind uint8

const (
	PaneHidden PaneKind = iota
	PaneStrip           // horizontal, top mode
	PaneRail            // icons only, compact mode
	PaneColumn          // full width, open mode
	PaneFlyout          // expanded compact pane floating over content
)

// LeadingKind is what occupies the leading slot of the app bar.
type LeadingKind uint8

const (
	LeadingNone LeadingKind = iota
	LeadingCustom
	LeadingBack
)

// Heights in rows.
const (
	AppBarHeight  = 1
	TopPaneHeight = 1
	flyoutBorderW = 2
)

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Constraints are the space offered to the view, in cells.
type Constraints struct {
	Width, Height int // Width may be Unbounded
	ViewportWidth int // window width, used when Width is Unbounded
}

// Layout is the structural result of one composition pass.
type Layout struct {
	Mode        DisplayMode // concrete; Open when Arrangement is ArrangeNone
	Arrangement Arrangement
	Size        Rect

	AppBar   Rect
	Pane     Rect
	PaneKind PaneKind
	Content  Rect
	// ContentInner is the area content is sized to: Content minus the shape
	// frame when clipped.
	ContentInner Rect
	ClipContent  bool
	// TapCatcher covers the screen behind the compact flyout.
	TapCatcher Rect

	Leading      LeadingKind
	LeadingWidth int
	MenuToggle   bool
	ToggleWidth  int
	// Inset is where title and actions start once animations settle.
	Inset int

	// OverlayAt is where the minimal overlay is mounted.
	OverlayAt    overlay.Point
	OpenWidth    int // cells
	CompactWidth int // cells
}

// Compose places app bar, pane and content for cfg within c. It is a pure
// function of its inputs. An Auto pane is resolved and composed again with
// the concrete mode substituted.
func Compose(cfg Config, c Constraints, st State, env Env) Layout {
	env.mustBeValid()

	if cfg.Pane != nil && cfg.Pane.DisplayMode == Auto {
		units := Unbounded
		if c.Width != Unbounded {
			units = env.Metric.Units(c.Width)
		}
		mode := Resolve(Auto, units, env.Metric.Units(c.ViewportWidth))
		if mode == Auto {
			fatal(ErrUnresolvedMode, "width %d", c.Width)
		}
		pane := *cfg.Pane
		pane.DisplayMode = mode
		cfg.Pane = &pane
		return Compose(cfg, c, st, env)
	}

	width := c.Width
	if width == Unbounded {
		width = c.ViewportWidth
	}
	width, height := max(width, 0), max(c.Height, 0)

	l := Layout{
		Mode: Open,
		Size: Rect{W: width, H: height},
	}

	var size PaneSize
	if cfg.Pane != nil {
		size = cfg.Pane.Size
		l.Mode = cfg.Pane.DisplayMode
	}
	l.OpenWidth = min(env.Metric.Cells(size.open()), width)
	l.CompactWidth = min(env.Metric.Cells(size.compact()), width)

	if cfg.Pane == nil {
		l.Arrangement = ArrangeNone
	} else {
		switch cfg.Pane.DisplayMode {
		case Top:
			l.Arrangement = ArrangeTop
		case Compact:
			l.Arrangement = ArrangeCompact
		case Open:
			l.Arrangement = ArrangeOpen
		case Minimal:
			l.Arrangement = ArrangeMinimal
		default:
			fatal(ErrUnresolvedMode, "unknown display mode %v", cfg.Pane.DisplayMode)
		}
	}

	// Minimal mode always gets a bar: it carries the menu toggle.
	appBarH := 0
	if cfg.AppBar != nil || l.Arrangement == ArrangeMinimal {
		appBarH = min(AppBarHeight, height)
		l.AppBar = Rect{W: width, H: appBarH}
	}
	below := max(height-appBarH, 0)

	switch l.Arrangement {
	case ArrangeNone:
		l.Content = Rect{Y: appBarH, W: width, H: below}

	case ArrangeTop:
		stripH := min(TopPaneHeight, below)
		l.PaneKind = PaneStrip
		l.Pane = Rect{Y: appBarH, W: width, H: stripH}
		l.Content = Rect{Y: appBarH + stripH, W: width, H: below - stripH}

	case ArrangeOpen:
		l.PaneKind = PaneColumn
		l.Pane = Rect{Y: appBarH, W: l.OpenWidth, H: below}
		l.Content = Rect{X: l.OpenWidth, Y: appBarH, W: width - l.OpenWidth, H: below}
		l.Inset = l.OpenWidth

	case ArrangeCompact:
		l.Content = Rect{X: l.CompactWidth, Y: appBarH, W: width - l.CompactWidth, H: below}
		l.Inset = l.CompactWidth
		if st.CompactExpanded {
			l.PaneKind = PaneFlyout
			l.Pane = Rect{Y: appBarH, W: min(l.OpenWidth+flyoutBorderW, width), H: below}
			l.TapCatcher = Rect{W: width, H: height}
		} else {
			l.PaneKind = PaneRail
			l.Pane = Rect{Y: appBarH, W: l.CompactWidth, H: below}
		}

	case ArrangeMinimal:
		l.Content = Rect{Y: appBarH, W: width, H: below}
		l.MenuToggle = true
		l.OverlayAt = overlay.Point{Y: appBarH}
		if st.Overlay == OverlayOpen {
			l.Inset = l.OpenWidth
		}
	}

	l.ClipContent = cfg.Clip != ClipNone && l.Arrangement != ArrangeMinimal
	l.ContentInner = l.Content
	if l.ClipContent {
		top, left := cfg.Shape.insets()
		l.ContentInner = Rect{
			X: l.Content.X + left,
			Y: l.Content.Y + top,
			W: max(l.Content.W-left, 0),
			H: max(l.Content.H-top, 0),
		}
	}

	if !l.AppBar.Empty() {
		l.Leading, l.LeadingWidth = leadingFor(cfg.AppBar, l.Arrangement, env)
		if l.MenuToggle {
			l.ToggleWidth = lipgloss.Width(env.Theme.Leading.Render(theme.IconMenu))
		}
	}
	return l
}

// leadingFor picks the leading control of the app bar. The implied back
// button is never shown in top mode.
func leadingFor(bar *AppBar, a Arrangement, env Env) (LeadingKind, int) {
	if bar == nil {
		return LeadingNone, 0
	}
	if bar.Leading != "" {
		return LeadingCustom, lipgloss.Width(env.Theme.Leading.Render(bar.Leading))
	}
	if bar.AutomaticallyImplyLeading && a != ArrangeTop &&
		env.Navigator != nil && env.Navigator.CanPop() {
		return LeadingBack, lipgloss.Width(env.Theme.Leading.Render(theme.IconBack))
	}
	return LeadingNone, 0
}

// Target is what a click landed on.
type Target uint8

const (
	TargetNone Target = iota
	TargetContent
	TargetAppBar
	TargetLeading
	TargetBack
	TargetMenuToggle
	TargetPane
	TargetTapCatcher
)

// Hit is the result of HitTest. X and Y are relative to the hit region.
type Hit struct {
	Target Target
	X, Y   int
}

// HitTest maps a screen cell to the element drawn there. While the compact
// flyout is open every click outside it lands on the tap catcher.
func (l Layout) HitTest(x, y int) Hit {
	if !l.TapCatcher.Empty() {
		if l.Pane.Contains(x, y) {
			return Hit{Target: TargetPane, X: x - l.Pane.X, Y: y - l.Pane.Y}
		}
		if l.TapCatcher.Contains(x, y) {
			return Hit{Target: TargetTapCatcher, X: x, Y: y}
		}
		return Hit{}
	}

	switch {
	case l.AppBar.Contains(x, y):
		rx := x - l.AppBar.X
		switch {
		case rx < l.LeadingWidth && l.Leading == LeadingBack:
			return Hit{Target: TargetBack, X: rx, Y: y - l.AppBar.Y}
		case rx < l.LeadingWidth:
			return Hit{Target: TargetLeading, X: rx, Y: y - l.AppBar.Y}
		case l.MenuToggle && rx < l.LeadingWidth+l.ToggleWidth:
			return Hit{Target: TargetMenuToggle, X: rx - l.LeadingWidth, Y: y - l.AppBar.Y}
		}
		return Hit{Target: TargetAppBar, X: rx, Y: y - l.AppBar.Y}
	case l.Pane.Contains(x, y):
		return Hit{Target: TargetPane, X: x - l.Pane.X, Y: y - l.Pane.Y}
	case l.Content.Contains(x, y):
		return Hit{Target: TargetContent, X: x - l.Content.X, Y: y - l.Content.Y}
	}
	return Hit{}
}
