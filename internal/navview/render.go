package navview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/tnguyen21/navshell/internal/l10n"
	"github.com/tnguyen21/navshell/internal/overlay"
	"github.com/tnguyen21/navshell/internal/theme"
)

// View implements tea.Model. The minimal overlay is not part of the result;
// it is drawn by the Portal it was mounted on.
func (m *Model) View() string {
	l := m.Layout()
	if l.Size.Empty() {
		return ""
	}
	ctx := m.contextFor(l)
	canvas := blank(l.Size.W, l.Size.H)

	if c := m.cfg.Content; c != nil && !l.ContentInner.Empty() {
		if ca, ok := c.(ContextAware); ok {
			ca.SetNavContext(ctx)
		}
		c.SetSize(l.ContentInner.W, l.ContentInner.H)
		view := c.View()
		if l.ClipContent {
			view = frameContent(clip(view, l.ContentInner.W, l.ContentInner.H), m.cfg.Shape)
		}
		canvas = overlay.Place(canvas, view, l.Content.X, l.Content.Y, l.Size.W)
	}

	switch l.PaneKind {
	case PaneStrip:
		canvas = overlay.Place(canvas, m.renderStrip(l.Pane.W), l.Pane.X, l.Pane.Y, l.Size.W)
	case PaneRail:
		canvas = overlay.Place(canvas, m.renderColumn(PaneRail, listRail, l.Mode, l.Pane.W, l.Pane.H), l.Pane.X, l.Pane.Y, l.Size.W)
	case PaneColumn:
		canvas = overlay.Place(canvas, m.renderColumn(PaneColumn, listColumn, l.Mode, l.Pane.W, l.Pane.H), l.Pane.X, l.Pane.Y, l.Size.W)
	case PaneFlyout:
		inner := m.renderColumn(PaneFlyout, listFlyout, l.Mode, l.Pane.W-flyoutBorderW, l.Pane.H-flyoutBorderW)
		canvas = overlay.Place(canvas, m.env.Theme.Flyout.Render(inner), l.Pane.X, l.Pane.Y, l.Size.W)
	}

	if !l.AppBar.Empty() {
		bar := m.cfg.AppBar
		if bar == nil {
			bar = &AppBar{}
		}
		canvas = overlay.Place(canvas, RenderAppBar(bar, ctx, l.AppBar.W, m.env), l.AppBar.X, l.AppBar.Y, l.Size.W)
	}
	return canvas
}

func blank(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// clip cuts view to width x height cells, dropping what falls outside.
func clip(view string, width, height int) string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

// frameContent draws the clip shape around the content region.
func frameContent(view string, s Shape) string {
	top, left := s.insets()
	if top == 0 && left == 0 {
		return view
	}
	style := lipgloss.NewStyle().
		Border(s.Border, top == 1, false, false, left == 1)
	if s.Color != nil {
		style = style.BorderForeground(s.Color)
	}
	return style.Render(view)
}

// RenderAppBar draws bar one row high and width cells wide for the
// navigation state ctx. Content can call it to build nested bars that line
// up with the surrounding pane.
func RenderAppBar(bar *AppBar, ctx ViewContext, width int, env Env) string {
	if width <= 0 {
		return ""
	}
	th := env.Theme

	var left string
	kind, _ := leadingFor(bar, ctx.Arrangement, env)
	switch kind {
	case LeadingCustom:
		left += th.Leading.Render(bar.Leading)
	case LeadingBack:
		left += th.Leading.Render(theme.IconBack)
	}
	if ctx.Arrangement == ArrangeMinimal {
		left += th.Leading.Render(theme.IconMenu)
	}

	// Title and actions follow the pane edge, except in top mode where
	// they sit right after the leading controls.
	start := ansi.StringWidth(left)
	if ctx.Arrangement != ArrangeTop && ctx.Arrangement != ArrangeNone {
		start = max(start, ctx.PaneWidth)
	}
	start = min(start, width)

	var actions string
	for _, a := range bar.Actions {
		actions += th.AppBarAction.Render(a)
	}
	actionsW := ansi.StringWidth(actions)
	if start+actionsW > width {
		actions, actionsW = "", 0
	}

	row := left + padWith(th.AppBar, start-ansi.StringWidth(left))
	if room := width - start - actionsW; room > 0 {
		title := runewidth.Truncate(bar.Title, max(room-1, 0), theme.IconMore)
		row += padded(th.AppBarTitle, " "+title, room, th.AppBar)
	}
	row += actions
	return ansi.Truncate(row, width, "")
}

// padded renders s in style and fills the rest of width with fill.
func padded(style lipgloss.Style, s string, width int, fill lipgloss.Style) string {
	out := style.Render(s)
	w := ansi.StringWidth(out)
	if w > width {
		return ansi.Truncate(out, width, "")
	}
	return out + padWith(fill, width-w)
}

func padWith(style lipgloss.Style, n int) string {
	if n <= 0 {
		return ""
	}
	return style.Render(strings.Repeat(" ", n))
}

// HelpKeys returns the key map with help text for the current state,
// localized through the view's strings.
func (m *Model) HelpKeys() KeyMap {
	k := m.Keys
	s := m.env.Strings
	menu := m.MenuLabel()
	if m.Layout().Arrangement == ArrangeCompact && !m.state.CompactExpanded {
		menu = s.Lookup(l10n.ExpandPane)
	}
	k.Menu.SetHelp(helpKey(k.Menu), menu)
	k.Dismiss.SetHelp(helpKey(k.Dismiss), s.Lookup(l10n.ModalBarrierDismiss))
	k.Back.SetHelp(helpKey(k.Back), s.Lookup(l10n.BackButtonTooltip))
	return k
}

func helpKey(b key.Binding) string {
	return b.Help().Key
}
