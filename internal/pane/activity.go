package pane

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/navshell/internal/theme"
)

// EventKind classifies entries of the activity log.
type EventKind int

const (
	EventModeChanged EventKind = iota
	EventOverlayOpened
	EventOverlayClosed
	EventSelection
	EventBack
	EventSetting
)

func (k EventKind) String() string {
	switch k {
	case EventModeChanged:
		return "mode"
	case EventOverlayOpened:
		return "overlay+"
	case EventOverlayClosed:
		return "overlay-"
	case EventSelection:
		return "select"
	case EventBack:
		return "back"
	case EventSetting:
		return "setting"
	default:
		return "event"
	}
}

// NavEventMsg records something the navigation shell did.
type NavEventMsg struct {
	Kind   EventKind
	Detail string
	At     time.Time
}

// maxEvents caps the activity log.
const maxEvents = 500

// ActivityPane lists navigation events, most recent first.
type ActivityPane struct {
	events []NavEventMsg
	unseen int
	cursor int
	offset int // viewport scroll offset
	width  int
	height int
	now    func() time.Time
	keys   activityKeys
}

type activityKeys struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
}

// NewActivityPane creates a new Activity pane.
func NewActivityPane() *ActivityPane {
	return &ActivityPane{
		now: time.Now,
		keys: activityKeys{
			Up: key.NewBinding(
				key.WithKeys("k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("j", "down"),
			),
			Clear: key.NewBinding(
				key.WithKeys("c"),
			),
		},
	}
}

func (p *ActivityPane) ID() PaneID        { return PaneActivity }
func (p *ActivityPane) Title() string      { return "Activity" }
func (p *ActivityPane) ShortTitle() string { return "≡" }

// Badge returns the number of events recorded since the pane was last seen.
func (p *ActivityPane) Badge() int {
	return p.unseen
}

// Seen clears the badge.
func (p *ActivityPane) Seen() {
	p.unseen = 0
}

func (p *ActivityPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.clampScroll()
}

func (p *ActivityPane) Init() tea.Cmd {
	return nil
}

func (p *ActivityPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NavEventMsg:
		if msg.At.IsZero() {
			msg.At = p.now()
		}
		p.events = append([]NavEventMsg{msg}, p.events...)
		if len(p.events) > maxEvents {
			p.events = p.events[:maxEvents]
		}
		p.unseen++
		// keep the selected event in place
		if p.cursor > 0 {
			p.cursor++
		}
		p.clampScroll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
				p.scrollToCursor()
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.events)-1 {
				p.cursor++
				p.scrollToCursor()
			}
		case key.Matches(msg, p.keys.Clear):
			p.events = nil
			p.unseen = 0
			p.cursor, p.offset = 0, 0
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.offset--
			p.clampScroll()
		case tea.MouseButtonWheelDown:
			p.offset++
			p.clampScroll()
		}
	}
	return p, nil
}

func (p *ActivityPane) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	var b strings.Builder

	header := fmt.Sprintf("─── ACTIVITY (%d events) ───", len(p.events))
	b.WriteString(theme.PageHeaderStyle.Render(TruncateWithEllipsis(header, p.width)))
	b.WriteString("\n")

	if len(p.events) == 0 {
		b.WriteString(theme.MutedStyle.Render("  Nothing yet. Resize the terminal or open the menu."))
		return b.String()
	}

	contentHeight := p.contentHeight()
	end := min(p.offset+contentHeight, len(p.events))
	for i := p.offset; i < end; i++ {
		b.WriteString(p.formatEventRow(p.events[i], i == p.cursor))
		b.WriteString("\n")
	}
	for i := end - p.offset; i < contentHeight; i++ {
		b.WriteString("\n")
	}

	last := FormatAge(p.now().Sub(p.events[0].At))
	footer := TruncateWithEllipsis("j/k scroll  c=clear  last "+last, p.width)
	b.WriteString(theme.MutedStyle.Render(footer))

	return b.String()
}

// formatEventRow formats a single event.
func (p *ActivityPane) formatEventRow(e NavEventMsg, selected bool) string {
	// Layout: "  <time>  <kind>  <detail>"
	kindCol := 10
	fixedWidth := 2 + 8 + 2 + kindCol
	detailCol := max(p.width-fixedWidth, 10)

	stamp := e.At.Format("15:04:05")
	kind := EventStyle(e.Kind).Render(padOrTruncate(e.Kind.String(), kindCol))
	detail := TruncateWithEllipsis(e.Detail, detailCol)

	line := fmt.Sprintf("  %s  %s%s", theme.MutedStyle.Render(stamp), kind, detail)
	if selected {
		return theme.AccentStyle.Bold(true).Render("▸") + line[1:]
	}
	return line
}

func (p *ActivityPane) contentHeight() int {
	// header and footer
	return max(p.height-2, 1)
}

// scrollToCursor ensures the cursor row is visible.
func (p *ActivityPane) scrollToCursor() {
	h := p.contentHeight()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+h {
		p.offset = p.cursor - h + 1
	}
	p.clampScroll()
}

// clampScroll ensures offset and cursor stay in valid range.
func (p *ActivityPane) clampScroll() {
	maxOffset := max(len(p.events)-p.contentHeight(), 0)
	p.offset = min(max(p.offset, 0), maxOffset)
	p.cursor = min(max(p.cursor, 0), max(len(p.events)-1, 0))
}

// padOrTruncate fits s into exactly n cells.
func padOrTruncate(s string, n int) string {
	s = TruncateWithEllipsis(s, n)
	return s + strings.Repeat(" ", max(n-len([]rune(s)), 0))
}

// Ensure ActivityPane implements Pane at compile time.
var _ Pane = (*ActivityPane)(nil)
