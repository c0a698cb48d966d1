package pane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/theme"
)

// OpenTopicMsg is emitted when a topic is opened from the Home page. The
// host pushes the previous route so back returns to the list.
type OpenTopicMsg struct {
	Topic string
}

type topic struct {
	Title string
	Body  string
}

var topics = []topic{
	{"Display modes", "The pane is drawn in one of four arrangements.\n\n" +
		"  top      a strip of items under the app bar\n" +
		"  compact  an icon rail; space expands it over the content\n" +
		"  open     a full column next to the content\n" +
		"  minimal  hidden behind the ☰ menu toggle\n\n" +
		"In auto mode the width picks one: up to 80 columns is minimal,\n" +
		"up to 126 columns is compact, anything wider is open."},
	{"The menu overlay", "In minimal mode the pane floats above the page.\n\n" +
		"Press space or click ☰ to open it. Esc, space or a click outside\n" +
		"closes it; picking an item closes it as well. While it is open\n" +
		"every key goes to the menu."},
	{"Back navigation", "Opening a topic pushes a route on the back-stack. The app bar\n" +
		"then shows ← and backspace or esc returns here.\n\n" +
		"Top mode never shows the back button."},
	{"Scrolling the pane", "The pane list keeps its scroll position when the arrangement\n" +
		"changes. Use [ and ] or the mouse wheel over the pane."},
}

// HomePane lists topics about the shell and shows the live navigation
// context.
type HomePane struct {
	width    int
	height   int
	viewport viewport.Model
	ctx      navview.ViewContext
	cursor   int
	open     int // index into topics, -1 on the list
	keys     homeKeys
}

type homeKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// NewHomePane creates a new Home pane.
func NewHomePane() *HomePane {
	return &HomePane{
		viewport: viewport.New(0, 0),
		open:     -1,
		keys: homeKeys{
			Up: key.NewBinding(
				key.WithKeys("k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("j", "down"),
			),
			Select: key.NewBinding(
				key.WithKeys("enter"),
			),
		},
	}
}

func (h *HomePane) ID() PaneID        { return PaneHome }
func (h *HomePane) Title() string      { return "Home" }
func (h *HomePane) ShortTitle() string { return "⌂" }
func (h *HomePane) Badge() int         { return 0 }

func (h *HomePane) SetSize(w, ht int) {
	h.width = w
	h.height = ht
	h.viewport.Width = w
	h.viewport.Height = ht
	h.viewport.SetContent(h.renderContent())
}

// SetNavContext implements navview.ContextAware.
func (h *HomePane) SetNavContext(ctx navview.ViewContext) {
	if ctx == h.ctx {
		return
	}
	h.ctx = ctx
	h.viewport.SetContent(h.renderContent())
}

// Topic returns the title of the open topic, or "" on the list.
func (h *HomePane) Topic() string {
	if h.open < 0 {
		return ""
	}
	return topics[h.open].Title
}

func (h *HomePane) Init() tea.Cmd {
	return nil
}

func (h *HomePane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RestoreMsg:
		if msg.ID == PaneHome {
			h.open = topicIndex(msg.Topic)
			h.viewport.GotoTop()
			h.viewport.SetContent(h.renderContent())
		}
		return h, nil

	case tea.KeyMsg:
		if h.open >= 0 {
			break
		}
		switch {
		case key.Matches(msg, h.keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, h.keys.Down):
			if h.cursor < len(topics)-1 {
				h.cursor++
			}
		case key.Matches(msg, h.keys.Select):
			h.open = h.cursor
			h.viewport.GotoTop()
			h.viewport.SetContent(h.renderContent())
			title := topics[h.cursor].Title
			return h, func() tea.Msg { return OpenTopicMsg{Topic: title} }
		default:
			return h, nil
		}
		h.viewport.SetContent(h.renderContent())
		return h, nil
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h *HomePane) View() string {
	return h.viewport.View()
}

func topicIndex(title string) int {
	for i, t := range topics {
		if t.Title == title {
			return i
		}
	}
	return -1
}

// renderContent builds the page text.
func (h *HomePane) renderContent() string {
	if h.width == 0 {
		return ""
	}

	var b strings.Builder
	if h.open >= 0 {
		t := topics[h.open]
		b.WriteString(theme.PageHeaderStyle.Render(TruncateWithEllipsis(t.Title, h.width)))
		b.WriteString("\n\n")
		b.WriteString(t.Body)
		return b.String()
	}

	b.WriteString(theme.PageHeaderStyle.Render(centerPad("NAVSHELL", h.width)))
	b.WriteString("\n\n")
	h.renderContext(&b)
	b.WriteString("\n")
	for i, t := range topics {
		marker := "  "
		style := theme.MutedStyle
		if i == h.cursor {
			marker = "▸ "
			style = theme.AccentStyle
		}
		b.WriteString(style.Render(TruncateWithEllipsis(marker+t.Title, h.width)))
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render(TruncateWithEllipsis("j/k move  enter open", h.width)))
	return b.String()
}

// renderContext shows the navigation state this page is drawn in.
func (h *HomePane) renderContext(b *strings.Builder) {
	overlay := "closed"
	if h.ctx.OverlayOpen {
		overlay = "open"
	}
	rows := [][2]string{
		{"mode", h.ctx.Mode.String()},
		{"arrangement", h.ctx.Arrangement.String()},
		{"pane width", fmt.Sprintf("%d cells", h.ctx.PaneWidth)},
		{"menu", overlay},
	}
	if h.ctx.Arrangement == navview.ArrangeCompact {
		expanded := "collapsed"
		if h.ctx.CompactExpanded {
			expanded = "expanded"
		}
		rows = append(rows, [2]string{"rail", expanded})
	}
	for _, r := range rows {
		line := fmt.Sprintf("  %-12s %s", r[0], theme.AccentStyle.Render(r[1]))
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// Ensure HomePane implements Pane and receives the navigation context.
var (
	_ Pane                 = (*HomePane)(nil)
	_ navview.ContextAware = (*HomePane)(nil)
)
