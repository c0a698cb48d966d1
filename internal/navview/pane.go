package navview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/tnguyen21/navshell/internal/overlay"
	"github.com/tnguyen21/navshell/internal/theme"
)

// Scroll controller list ids, one per place the item list can be drawn.
const (
	listTop     = "top"
	listRail    = "compact"
	listColumn  = "open"
	listFlyout  = "flyout"
	listOverlay = "overlay"
)

type rowKind uint8

const (
	rowItem rowKind = iota
	rowToggle
	rowHeader
	rowSearch
	rowSeparator
)

type paneRow struct {
	kind rowKind
	item int // flat item index for rowItem
}

// columnLayout splits a vertical pane into fixed rows on top, the scrolled
// item list and fixed footer rows at the bottom.
type columnLayout struct {
	top    []paneRow
	list   []paneRow
	footer []paneRow
	listH  int
}

func layoutColumn(p *PaneSpec, kind PaneKind, height int) columnLayout {
	var c columnLayout
	if kind == PaneRail || kind == PaneFlyout {
		c.top = append(c.top, paneRow{kind: rowToggle, item: -1})
	}
	if kind != PaneRail {
		if p.Header != "" {
			c.top = append(c.top, paneRow{kind: rowHeader, item: -1})
		}
		if p.SearchBox != "" {
			c.top = append(c.top, paneRow{kind: rowSearch, item: -1})
		}
	}
	for i := range p.Items {
		c.list = append(c.list, paneRow{kind: rowItem, item: i})
	}
	if len(p.FooterItems) > 0 {
		c.footer = append(c.footer, paneRow{kind: rowSeparator, item: -1})
		for i := range p.FooterItems {
			c.footer = append(c.footer, paneRow{kind: rowItem, item: len(p.Items) + i})
		}
	}

	// Short panes give up footer rows first, then fixed top rows.
	for len(c.top)+len(c.footer) > height && len(c.footer) > 0 {
		c.footer = c.footer[:len(c.footer)-1]
	}
	if len(c.top) > height {
		c.top = c.top[:max(height, 0)]
	}
	c.listH = max(height-len(c.top)-len(c.footer), 0)
	return c
}

// rowAt returns the row drawn y rows below the top of the pane.
func (c columnLayout) rowAt(y, offset int) (paneRow, bool) {
	if y < 0 {
		return paneRow{}, false
	}
	if y < len(c.top) {
		return c.top[y], true
	}
	y -= len(c.top)
	if y < c.listH {
		i := clampOffset(offset, len(c.list), c.listH) + y
		if i < len(c.list) {
			return c.list[i], true
		}
		return paneRow{}, false
	}
	y -= c.listH
	if y < len(c.footer) {
		return c.footer[y], true
	}
	return paneRow{}, false
}

// DefaultIndicator marks the selected row with a bar. Top mode relies on
// the underline drawn by the item instead.
func DefaultIndicator(th *theme.Theme) IndicatorBuilder {
	return func(mode DisplayMode, selected bool) string {
		switch {
		case mode == Top:
			return ""
		case selected:
			return th.Indicator.Render(theme.IconIndicator)
		default:
			return " "
		}
	}
}

// DefaultItemBuilder draws icon, title and badge. Icon-only rows show just
// the indicator and icon.
func DefaultItemBuilder(ctx ItemContext) string {
	th := ctx.Theme
	style := th.Item
	switch {
	case ctx.Item.Disabled:
		style = th.ItemDisabled
	case ctx.Selected:
		style = th.ItemSelected
	}

	if ctx.IconOnly {
		return ctx.Indicator + style.Render(ctx.Item.Icon)
	}

	badge := ""
	if ctx.Item.Badge > 0 {
		badge = th.Badge.Render(fmt.Sprintf(" %d", ctx.Item.Badge))
	}

	if ctx.Mode == Top {
		if ctx.Selected {
			style = style.Underline(true)
		}
		label := strings.TrimSpace(ctx.Item.Icon + " " + ctx.Item.Title)
		return ctx.Indicator + style.Padding(0, 1).Render(label) + badge
	}

	prefix := ctx.Indicator + " "
	if ctx.Item.Icon != "" {
		prefix += ctx.Item.Icon + " "
	}
	title := ctx.Item.Title
	if ctx.Width > 0 {
		room := ctx.Width - ansi.StringWidth(prefix) - ansi.StringWidth(badge)
		title = runewidth.Truncate(title, max(room, 0), theme.IconMore)
		gap := room - runewidth.StringWidth(title)
		if badge != "" && gap > 0 {
			badge = strings.Repeat(" ", gap) + badge
		}
	}
	return prefix + style.Render(title) + badge
}

// itemText draws the flat-indexed item it for the given mode.
func (m *Model) itemText(it PaneItem, idx int, mode DisplayMode, iconOnly bool, width int) string {
	th := m.env.Theme
	p := m.cfg.Pane

	switch it.Kind {
	case ItemSeparator:
		if mode == Top {
			return th.Separator.Render("│")
		}
		return th.Separator.Render(strings.Repeat("─", max(width, 0)))
	case ItemHeader:
		if iconOnly {
			return ""
		}
		title := it.Title
		if width > 0 {
			title = runewidth.Truncate(title, max(width-2, 0), theme.IconMore)
		}
		return th.ItemHeader.Render(title)
	}

	selected := idx == p.Selected
	indicator := p.Indicator
	if indicator == nil {
		indicator = DefaultIndicator(th)
	}
	build := p.ItemBuilder
	if build == nil {
		build = DefaultItemBuilder
	}
	return build(ItemContext{
		Item:      it,
		Mode:      mode,
		Selected:  selected,
		Width:     width,
		IconOnly:  iconOnly,
		Indicator: indicator(mode, selected),
		Theme:     th,
	})
}

func (m *Model) rowText(r paneRow, kind PaneKind, mode DisplayMode, width int) string {
	th := m.env.Theme
	p := m.cfg.Pane
	switch r.kind {
	case rowToggle:
		icon := theme.IconExpand
		if kind == PaneFlyout {
			icon = theme.IconCollapse
		}
		return " " + th.PaneHeader.UnsetPadding().Render(icon)
	case rowHeader:
		return th.PaneHeader.Render(runewidth.Truncate(p.Header, max(width-2, 0), theme.IconMore))
	case rowSearch:
		return th.SearchBox.Render(runewidth.Truncate(theme.IconSearch+" "+p.SearchBox, max(width-2, 0), theme.IconMore))
	case rowSeparator:
		return th.Separator.Render(strings.Repeat("─", max(width, 0)))
	}
	it, _ := p.item(r.item)
	return m.itemText(it, r.item, mode, kind == PaneRail, width)
}

// renderColumn draws a vertical pane of kind. The item list goes through
// the shared scroll controller under list.
func (m *Model) renderColumn(kind PaneKind, list string, mode DisplayMode, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	c := layoutColumn(m.cfg.Pane, kind, height)
	rows := make([]string, 0, height)
	for _, r := range c.top {
		rows = append(rows, fit(m.rowText(r, kind, mode, width), width))
	}
	if c.listH > 0 {
		items := make([]string, len(c.list))
		for i, r := range c.list {
			items[i] = fit(m.rowText(r, kind, mode, width), width)
		}
		rows = append(rows, m.scroll.ctrl.view(list, items, width, c.listH))
	}
	for _, r := range c.footer {
		rows = append(rows, fit(m.rowText(r, kind, mode, width), width))
	}
	return strings.Join(rows, "\n")
}

type stripCell struct {
	x, w int
	row  paneRow
	text string
}

// stripCells lays out the top-mode strip: header, then items from the
// scroll offset on, with footer items pinned to the right edge.
func (m *Model) stripCells(width int) []stripCell {
	th := m.env.Theme
	p := m.cfg.Pane
	var cells []stripCell

	x := 0
	if p.Header != "" {
		text := th.PaneHeader.Render(p.Header)
		cells = append(cells, stripCell{x: x, w: ansi.StringWidth(text), row: paneRow{kind: rowHeader, item: -1}, text: text})
		x += ansi.StringWidth(text)
	}

	var footer []stripCell
	footerW := 0
	for i, it := range p.FooterItems {
		idx := len(p.Items) + i
		text := m.itemText(it, idx, Top, false, 0)
		w := ansi.StringWidth(text)
		footer = append(footer, stripCell{w: w, row: paneRow{kind: rowItem, item: idx}, text: text})
		footerW += w
	}
	if footerW > width-x {
		footer, footerW = nil, 0
	}
	avail := width - footerW

	off := clampOffset(m.scroll.ctrl.Offset(), len(p.Items), 1)
	for i := off; i < len(p.Items); i++ {
		text := m.itemText(p.Items[i], i, Top, false, 0)
		w := ansi.StringWidth(text)
		if x+w > avail {
			break
		}
		cells = append(cells, stripCell{x: x, w: w, row: paneRow{kind: rowItem, item: i}, text: text})
		x += w
	}

	fx := avail
	for _, f := range footer {
		f.x = fx
		cells = append(cells, f)
		fx += f.w
	}
	return cells
}

func (m *Model) renderStrip(width int) string {
	m.scroll.ctrl.attach(listTop)
	line := strings.Repeat(" ", max(width, 0))
	for _, c := range m.stripCells(width) {
		line = overlay.Place(line, c.text, c.x, 0, width)
	}
	return line
}

// fit cuts or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
