package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tnguyen21/navshell/internal/config"
	"github.com/tnguyen21/navshell/internal/l10n"
	"github.com/tnguyen21/navshell/internal/navstack"
	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/overlay"
	"github.com/tnguyen21/navshell/internal/pane"
	"github.com/tnguyen21/navshell/internal/theme"
)

// route is one back-stack entry: the page shown and the topic open on it.
type route struct {
	page  int
	topic string
}

// pageSelectedMsg is sent by the navigation pane when the user picks a page.
type pageSelectedMsg struct {
	index int
}

// Model is the root bubbletea Model. It builds the navigation view from its
// pages and routes input between the view, the shell keys and the active
// page.
type Model struct {
	nav    *navview.Model
	portal *overlay.Stack
	back   *navstack.Stack[route]

	panes      []pane.Pane
	home       *pane.HomePane
	activity   *pane.ActivityPane
	settings   *pane.SettingsPane
	activePane int

	width      int
	height     int
	contentW   int
	contentH   int
	layoutMode LayoutMode
	mode       navview.DisplayMode
	clip       navview.Clip

	keys     KeyMap
	config   *config.Config
	help     help.Model
	showHelp bool
	closed   bool
	logger   *log.Logger
}

// New creates a root Model with the given config. A nil logger discards.
func New(cfg config.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	th := cfg.Theme()
	clip, err := config.ParseClip(cfg.Clip)
	if err != nil {
		logger.Warn("invalid clip, using hard_edge", "clip", cfg.Clip)
		clip = navview.ClipHardEdge
	}

	m := &Model{
		portal:   overlay.NewStack(th.Animation.Overlay),
		back:     &navstack.Stack[route]{},
		home:     pane.NewHomePane(),
		activity: pane.NewActivityPane(),
		mode:     cfg.Mode(),
		clip:     clip,
		keys:     DefaultKeyMap(),
		config:   &cfg,
		help:     help.New(),
		logger:   logger,
	}
	m.settings = pane.NewSettingsPane(m.mode, clip)
	m.panes = []pane.Pane{m.home, m.activity, m.settings}
	m.help.ShowAll = true

	m.nav = navview.New(m.navConfig(), navview.Options{
		Theme:     th,
		Strings:   l10n.WithOverrides(cfg.Strings),
		Portal:    m.portal,
		Navigator: m.back,
		Metric:    navview.Metric{UnitsPerCell: cfg.UnitsPerCell},
		Logger:    logger,
	})
	return m
}

// Close releases the navigation view. Calling it again does nothing.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.nav.Close()
}

// Closed reports whether Close was called.
func (m *Model) Closed() bool { return m.closed }

// navConfig builds the navigation view configuration for the current
// pages. Settings sits in the pane footer.
func (m *Model) navConfig() navview.Config {
	items := make([]navview.PaneItem, 0, len(m.panes)-1)
	for _, p := range m.panes[:len(m.panes)-1] {
		items = append(items, pageItem(p))
	}
	return navview.Config{
		AppBar: &navview.AppBar{
			Title:                     m.title(),
			AutomaticallyImplyLeading: m.config.AppBar.ImplyLeading,
		},
		Pane: &navview.PaneSpec{
			DisplayMode: m.mode,
			Items:       items,
			FooterItems: []navview.PaneItem{pageItem(m.settings)},
			Header:      "Pages",
			Selected:    m.activePane,
			OnChanged: func(i int) tea.Cmd {
				return func() tea.Msg { return pageSelectedMsg{index: i} }
			},
			Size: navview.PaneSize{
				OpenWidth:    m.config.Pane.OpenWidth,
				CompactWidth: m.config.Pane.CompactWidth,
			},
		},
		Content: pageContent{m: m},
		Clip:    m.clip,
		Shape:   navview.DefaultShape(),
	}
}

func pageItem(p pane.Pane) navview.PaneItem {
	return navview.PaneItem{
		Icon:  p.ShortTitle(),
		Title: p.Title(),
		Badge: p.Badge(),
	}
}

// title is the app bar title: shell name, page and open topic.
func (m *Model) title() string {
	t := m.panes[m.activePane].Title()
	if m.config.AppBar.Title != "" {
		t = m.config.AppBar.Title + " · " + t
	}
	if m.panes[m.activePane].ID() == pane.PaneHome {
		if topic := m.home.Topic(); topic != "" {
			t += " › " + topic
		}
	}
	return t
}

func (m *Model) currentRoute() route {
	r := route{page: m.activePane}
	if m.panes[m.activePane].ID() == pane.PaneHome {
		r.topic = m.home.Topic()
	}
	return r
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.nav.Init()}
	for _, p := range m.panes {
		cmds = append(cmds, p.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages, then hands the rebuilt
// configuration to the navigation view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.nav.SetConfig(m.navConfig()))
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		return m.nav.SetSize(msg.Width, NavHeight(msg.Height))

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pageSelectedMsg:
		m.switchTo(msg.index)
		return nil

	case navstack.PoppedMsg[route]:
		return m.restore(msg.Entry, msg.Depth)

	case pane.OpenTopicMsg:
		m.back.Push(route{page: m.activePane})
		m.logger.Debug("topic opened", "topic", msg.Topic)
		return nil

	case pane.SetDisplayModeMsg:
		m.mode = msg.Mode
		m.logger.Info("display mode set", "mode", msg.Mode)
		m.record(pane.EventSetting, "display mode: "+msg.Mode.String())
		return nil

	case pane.SetClipMsg:
		m.clip = msg.Clip
		name := "hard_edge"
		if msg.Clip == navview.ClipNone {
			name = "none"
		}
		m.logger.Info("clip set", "clip", name)
		m.record(pane.EventSetting, "clip: "+name)
		return nil

	// Navigation view notifications feed the activity log.
	case navview.ModeChangedMsg:
		m.record(pane.EventModeChanged, fmt.Sprintf("%s → %s", msg.From, msg.To))
		return nil
	case navview.OverlayOpenedMsg:
		m.record(pane.EventOverlayOpened, "menu")
		return nil
	case navview.OverlayClosedMsg:
		m.record(pane.EventOverlayClosed, "menu")
		return nil
	case navview.SelectionChangedMsg:
		if msg.Index >= 0 && msg.Index < len(m.panes) {
			m.record(pane.EventSelection, m.panes[msg.Index].Title())
		}
		return nil
	}

	_, cmd := m.nav.Update(msg)
	return tea.Batch(cmd, m.updateActivePane(msg))
}

// switchTo makes page i active, remembering the current route.
func (m *Model) switchTo(i int) {
	if i < 0 || i >= len(m.panes) || i == m.activePane {
		return
	}
	m.back.Push(m.currentRoute())
	m.activePane = i
	m.showHelp = false
	if m.panes[i].ID() == pane.PaneActivity {
		m.activity.Seen()
	}
	m.logger.Debug("page selected", "page", m.panes[i].Title(), "depth", m.back.Len())
}

// restore returns to a popped route.
func (m *Model) restore(r route, depth int) tea.Cmd {
	if r.page < 0 || r.page >= len(m.panes) {
		return nil
	}
	m.activePane = r.page
	m.showHelp = false
	p := m.panes[r.page]
	if p.ID() == pane.PaneActivity {
		m.activity.Seen()
	}
	detail := p.Title()
	if r.topic != "" {
		detail += " › " + r.topic
	}
	m.record(pane.EventBack, fmt.Sprintf("%s (depth %d)", detail, depth))
	return m.updateActivePane(pane.RestoreMsg{ID: p.ID(), Topic: r.topic})
}

// record appends an entry to the activity log. Entries logged while the
// activity page is showing are already seen.
func (m *Model) record(kind pane.EventKind, detail string) {
	m.activity.Update(pane.NavEventMsg{Kind: kind, Detail: detail, At: time.Now()})
	if m.panes[m.activePane].ID() == pane.PaneActivity {
		m.activity.Seen()
	}
}

// handleKey routes a key to the navigation view first, then the shell
// bindings, then the active page.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if cmd, ok := m.nav.HandleKey(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keys.Back):
		if m.showHelp {
			m.showHelp = false
			return nil
		}
		if m.back.CanPop() {
			return m.back.Pop()
		}
		return nil
	}

	for i, b := range m.keys.pageKeys() {
		if key.Matches(msg, b) && i < len(m.panes) {
			return m.nav.Select(i)
		}
	}

	return m.updateActivePane(msg)
}

// handleMouse gives the navigation view first pick. Content events reach
// the active page relative to its own top-left corner.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if cmd, ok := m.nav.HandleMouse(msg); ok {
		return cmd
	}
	inner := m.nav.Layout().ContentInner
	if !inner.Contains(msg.X, msg.Y) {
		return nil
	}
	msg.X -= inner.X
	msg.Y -= inner.Y
	return m.updateActivePane(msg)
}

// updateActivePane sends a message to the active pane and stores the result.
func (m *Model) updateActivePane(msg tea.Msg) tea.Cmd {
	newModel, cmd := m.panes[m.activePane].Update(msg)
	if newPane, ok := newModel.(pane.Pane); ok {
		m.panes[m.activePane] = newPane
	}
	return cmd
}

// View renders the navigation view and status bar, then the overlay layers
// on top.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := lipgloss.JoinVertical(lipgloss.Left, m.nav.View(), m.renderStatusBar())
	return m.portal.Compose(base, m.width, m.height)
}

// renderStatusBar renders the bottom status bar.
func (m *Model) renderStatusBar() string {
	ctx := m.nav.Context()
	mode := theme.AccentStyle.Render(ctx.Mode.String())
	if m.mode == navview.Auto {
		mode = theme.MutedStyle.Render("auto→") + mode
	}
	keys := theme.MutedStyle.Render("?=help  q=quit")

	var parts []string
	switch m.layoutMode {
	case LayoutNarrow:
		parts = []string{keys}
	case LayoutMedium:
		parts = []string{mode, keys}
	default:
		parts = []string{mode}
		if ctx.Arrangement == navview.ArrangeMinimal || ctx.Arrangement == navview.ArrangeCompact {
			menu := m.nav.HelpKeys().Menu.Help()
			parts = append(parts, theme.MutedStyle.Render(menu.Key+"="+menu.Desc))
		}
		if n := m.back.Len(); n > 0 {
			parts = append(parts, theme.MutedStyle.Render(fmt.Sprintf("%s %d", theme.IconBack, n)))
		}
		parts = append(parts, keys)
	}

	bar := strings.Join(parts, "  |  ")
	return theme.StatusBarStyle.Width(m.width).Render(bar)
}

// pageContent adapts the active page to the navigation view's content slot.
type pageContent struct {
	m *Model
}

func (c pageContent) SetSize(w, h int) {
	m := c.m
	m.help.Width = w
	if w == m.contentW && h == m.contentH {
		return
	}
	m.contentW, m.contentH = w, h
	for _, p := range m.panes {
		p.SetSize(w, h)
	}
}

func (c pageContent) View() string {
	m := c.m
	if m.showHelp {
		return m.help.View(helpKeys{app: m.keys, nav: m.nav.HelpKeys()})
	}
	return m.panes[m.activePane].View()
}

// SetNavContext forwards the navigation state to pages that show it.
func (c pageContent) SetNavContext(ctx navview.ViewContext) {
	c.m.home.SetNavContext(ctx)
}

var (
	_ navview.Content      = pageContent{}
	_ navview.ContextAware = pageContent{}
)

// helpKeys joins the shell and navigation bindings for the help view.
type helpKeys struct {
	app KeyMap
	nav navview.KeyMap
}

// ShortHelp implements help.KeyMap.
func (k helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.app.Quit, k.nav.Menu, k.app.Back, k.app.Help}
}

// FullHelp implements help.KeyMap.
func (k helpKeys) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{k.app.Quit, k.app.Help, k.app.Back},
		{k.app.Pane1, k.app.Pane2, k.app.Pane3},
		{k.app.Up, k.app.Down, k.app.Select},
	}
	return append(groups, k.nav.FullHelp()...)
}

var _ help.KeyMap = helpKeys{}
