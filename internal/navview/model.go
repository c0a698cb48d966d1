package navview

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tnguyen21/navshell/internal/l10n"
	"github.com/tnguyen21/navshell/internal/overlay"
	"github.com/tnguyen21/navshell/internal/theme"
)

// ModeChangedMsg is emitted when the resolved display mode changes after
// the first layout.
type ModeChangedMsg struct {
	From, To DisplayMode
}

// OverlayOpenedMsg is emitted when the minimal overlay is mounted.
type OverlayOpenedMsg struct{}

// OverlayClosedMsg is emitted once the minimal overlay is fully removed.
type OverlayClosedMsg struct{}

// SelectionChangedMsg is emitted when a pane item is activated.
type SelectionChangedMsg struct {
	Index int
}

type overlayRemovedMsg struct {
	id, gen int
}

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Options are the host facilities a Model is created with.
type Options struct {
	Theme   *theme.Theme
	Strings l10n.Strings
	// Portal mounts the minimal overlay. Opening the overlay without one
	// panics with ErrNoOverlayHost.
	Portal    overlay.Portal
	Navigator Navigator
	Metric    Metric
	Logger    *log.Logger
	// Now is the animation clock; defaults to time.Now.
	Now func() time.Time
}

// Model is an adaptive navigation view: an app bar, a navigation pane whose
// arrangement follows the available width, and the host's content.
type Model struct {
	Keys KeyMap

	id     int
	cfg    Config
	env    Env
	portal overlay.Portal
	logger *log.Logger
	now    func() time.Time

	constraints Constraints
	state       State
	resolved    bool
	scroll      scrollState
	handle      overlay.Handle
	overlayGen  int
	inset       tween
}

// New returns a navigation view for cfg. Missing theme or strings default
// to the built-in ones.
func New(cfg Config, opts Options) *Model {
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Strings == nil {
		opts.Strings = l10n.English()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Model{
		Keys: DefaultKeyMap(),
		id:   nextID(),
		cfg:  cfg,
		env: Env{
			Theme:     opts.Theme,
			Strings:   opts.Strings,
			Navigator: opts.Navigator,
			Metric:    opts.Metric,
		},
		portal: opts.Portal,
		logger: logger.WithPrefix("navview"),
		now:    now,
		scroll: newScrollState(hostController(cfg)),
	}
}

func hostController(cfg Config) *ScrollController {
	if cfg.Pane == nil {
		return nil
	}
	return cfg.Pane.ScrollController
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// SetConfig replaces the configuration, as on every host rebuild.
func (m *Model) SetConfig(cfg Config) tea.Cmd {
	m.cfg = cfg
	m.scroll.reconcile(hostController(cfg))
	return m.sync()
}

// Config returns the current configuration.
func (m *Model) Config() Config { return m.cfg }

// SetSize offers the view a bounded width x height area.
func (m *Model) SetSize(width, height int) tea.Cmd {
	return m.SetConstraints(Constraints{Width: width, Height: height, ViewportWidth: width})
}

// SetConstraints offers the view c.
func (m *Model) SetConstraints(c Constraints) tea.Cmd {
	m.constraints = c
	return m.sync()
}

// Layout composes the current configuration, size and state.
func (m *Model) Layout() Layout {
	return Compose(m.cfg, m.constraints, m.state, m.env)
}

// State returns the transient view state.
func (m *Model) State() State { return m.state }

// ScrollController returns the controller the pane list currently uses.
func (m *Model) ScrollController() *ScrollController { return m.scroll.ctrl }

// Context returns the navigation context handed to content.
func (m *Model) Context() ViewContext {
	return m.contextFor(m.Layout())
}

func (m *Model) contextFor(l Layout) ViewContext {
	return ViewContext{
		Mode:            l.Mode,
		Arrangement:     l.Arrangement,
		OverlayOpen:     m.state.Overlay == OverlayOpen && l.Arrangement == ArrangeMinimal,
		CompactExpanded: m.state.CompactExpanded && l.Arrangement == ArrangeCompact,
		PaneWidth:       m.inset.value(m.now()),
	}
}

// Focused reports whether the view holds keyboard focus, which it does
// while a floating pane is shown.
func (m *Model) Focused() bool {
	return m.state.Overlay == OverlayOpen || m.state.CompactExpanded
}

// MenuLabel is the label of the menu toggle for the current overlay state.
func (m *Model) MenuLabel() string {
	if m.state.Overlay == OverlayOpen {
		return m.env.Strings.Lookup(l10n.CloseNavigation)
	}
	return m.env.Strings.Lookup(l10n.OpenNavigation)
}

// Close releases the view's own scroll controller and unmounts any overlay.
func (m *Model) Close() {
	if m.handle != nil && !m.handle.Removing() {
		m.handle.Remove()
	}
	m.handle = nil
	m.state = m.state.Back()
	m.scroll.dispose()
}

// sync re-resolves the concrete mode after a size or configuration change.
func (m *Model) sync() tea.Cmd {
	l := m.Layout()
	if l.Arrangement == ArrangeNone {
		// Without a pane nothing floats, so no focus may outlive it.
		m.state = m.state.CollapseCompact()
		return tea.Batch(m.closeOverlay(), m.retargetInset(l, m.resolved))
	}

	var cmds []tea.Cmd
	first := !m.resolved
	if first || l.Mode != m.state.Mode {
		from := m.state.Mode
		m.state = m.state.WithMode(l.Mode)
		m.resolved = true
		if !first {
			m.logger.Debug("display mode changed", "from", from, "to", l.Mode)
			cmds = append(cmds, emit(ModeChangedMsg{From: from, To: l.Mode}))
			if from == Minimal {
				cmds = append(cmds, m.closeOverlay())
			}
		}
		l = m.Layout()
	}
	cmds = append(cmds, m.retargetInset(l, !first))
	return tea.Batch(cmds...)
}

// retargetInset points the app-bar inset animation at l's inset.
func (m *Model) retargetInset(l Layout, animate bool) tea.Cmd {
	if l.Inset == m.inset.to {
		return nil
	}
	now := m.now()
	anim := m.env.Theme.Animation
	if !animate || anim.Pane <= 0 {
		m.inset = settled(l.Inset)
		return nil
	}
	m.inset = tween{
		from:     m.inset.value(now),
		to:       l.Inset,
		start:    now,
		duration: anim.Pane,
		curve:    anim.Curve,
	}
	return frame(m.id)
}

func (m *Model) openOverlay() tea.Cmd {
	if m.portal == nil {
		fatal(ErrNoOverlayHost, "cannot open the navigation overlay")
	}
	next, ok := m.state.OpenOverlay()
	if !ok {
		return nil
	}
	m.state = next
	l := m.Layout()
	m.overlayGen++
	m.handle = m.portal.Mount(minimalPane{m: m}, l.OverlayAt)
	m.logger.Debug("navigation overlay opened")
	return tea.Batch(emit(OverlayOpenedMsg{}), m.retargetInset(l, true))
}

func (m *Model) closeOverlay() tea.Cmd {
	if m.state.Overlay != OverlayOpen || m.handle == nil {
		return nil
	}
	m.state = m.state.StartBack()
	done := m.handle.Remove()
	id, gen := m.id, m.overlayGen
	m.logger.Debug("navigation overlay closing")
	return tea.Batch(
		done.Await(func() tea.Msg { return overlayRemovedMsg{id: id, gen: gen} }),
		m.retargetInset(m.Layout(), true),
	)
}

// OpenOverlay shows the minimal pane. It does nothing outside minimal mode
// or while an overlay is still mounted.
func (m *Model) OpenOverlay() tea.Cmd {
	if m.Layout().Arrangement != ArrangeMinimal {
		return nil
	}
	return m.openOverlay()
}

// CloseOverlay starts removing the minimal pane. It does nothing when no
// overlay is open.
func (m *Model) CloseOverlay() tea.Cmd {
	return m.closeOverlay()
}

func (m *Model) toggleMenu(l Layout) tea.Cmd {
	switch l.Arrangement {
	case ArrangeMinimal:
		if m.state.Overlay == OverlayOpen {
			return m.closeOverlay()
		}
		return m.openOverlay()
	case ArrangeCompact:
		m.state = m.state.ToggleCompact()
	}
	return nil
}

// Select activates the flat-indexed item i: OnTap runs first, then
// OnChanged when the selection moves. Floating panes close afterwards.
func (m *Model) Select(i int) tea.Cmd {
	p := m.cfg.Pane
	if p == nil {
		return nil
	}
	it, ok := p.item(i)
	if !ok || !it.selectable() {
		return nil
	}

	var cmds []tea.Cmd
	if it.OnTap != nil {
		cmds = append(cmds, it.OnTap())
	}
	if i != p.Selected {
		if p.OnChanged != nil {
			cmds = append(cmds, p.OnChanged(i))
		}
		cmds = append(cmds, emit(SelectionChangedMsg{Index: i}))
	}
	m.logger.Debug("pane item selected", "index", i, "title", it.Title)

	m.reveal(i)
	cmds = append(cmds, m.closeOverlay())
	m.state = m.state.CollapseCompact()
	return tea.Batch(cmds...)
}

// reveal scrolls the pane list so item i is visible.
func (m *Model) reveal(i int) {
	p := m.cfg.Pane
	if i >= len(p.Items) {
		return
	}
	l := m.Layout()
	switch l.PaneKind {
	case PaneStrip:
		ctrl := m.scroll.ctrl
		if i < ctrl.Offset() {
			ctrl.SetOffset(i)
		}
		for ctrl.Offset() < i && !m.stripShows(i, l.Pane.W) {
			ctrl.SetOffset(ctrl.Offset() + 1)
		}
	case PaneRail, PaneColumn:
		m.scroll.ctrl.ensureVisible(i, layoutColumn(p, l.PaneKind, l.Pane.H).listH)
	case PaneFlyout:
		m.scroll.ctrl.ensureVisible(i, layoutColumn(p, l.PaneKind, l.Pane.H-flyoutBorderW).listH)
	}
}

// stripShows reports whether item i fits in a strip of the given width at
// the current offset.
func (m *Model) stripShows(i, width int) bool {
	for _, c := range m.stripCells(width) {
		if c.row.kind == rowItem && c.row.item == i {
			return true
		}
	}
	return false
}

// step moves the selection delta selectable items, wrapping around.
func (m *Model) step(delta int) tea.Cmd {
	p := m.cfg.Pane
	if p == nil || p.count() == 0 {
		return nil
	}
	n := p.count()
	i := p.Selected
	for range n {
		i = ((i+delta)%n + n) % n
		if it, _ := p.item(i); it.selectable() {
			return m.Select(i)
		}
	}
	return nil
}

// Update implements tea.Model. Keys and mouse events are only handled when
// routed here; hosts that need to know whether the view consumed an event
// call HandleKey or HandleMouse.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd, _ := m.HandleKey(msg)
		return m, cmd
	case tea.MouseMsg:
		cmd, _ := m.HandleMouse(msg)
		return m, cmd
	case overlayRemovedMsg:
		if msg.id != m.id || msg.gen != m.overlayGen {
			return m, nil
		}
		m.state = m.state.Back()
		m.handle = nil
		m.logger.Debug("navigation overlay closed")
		return m, emit(OverlayClosedMsg{})
	case frameMsg:
		if msg.id != m.id || m.inset.done(m.now()) {
			return m, nil
		}
		return m, frame(m.id)
	}
	return m, nil
}

// HandleKey processes a key press and reports whether the view consumed it.
// While focused the view consumes every key.
func (m *Model) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	l := m.Layout()
	switch {
	case key.Matches(msg, m.Keys.Menu):
		if l.Arrangement == ArrangeMinimal || l.Arrangement == ArrangeCompact {
			return m.toggleMenu(l), true
		}
	case key.Matches(msg, m.Keys.Dismiss):
		if m.state.Overlay == OverlayOpen {
			return m.closeOverlay(), true
		}
		if m.state.CompactExpanded {
			m.state = m.state.CollapseCompact()
			return nil, true
		}
	case key.Matches(msg, m.Keys.Back):
		if l.Leading == LeadingBack {
			return m.env.Navigator.Pop(), true
		}
	case key.Matches(msg, m.Keys.Next):
		if m.cfg.Pane != nil {
			return m.step(1), true
		}
	case key.Matches(msg, m.Keys.Prev):
		if m.cfg.Pane != nil {
			return m.step(-1), true
		}
	case key.Matches(msg, m.Keys.PaneUp):
		if m.cfg.Pane != nil {
			m.scroll.ctrl.ScrollBy(-1)
			return nil, true
		}
	case key.Matches(msg, m.Keys.PaneDown):
		if m.cfg.Pane != nil {
			m.scroll.ctrl.ScrollBy(1)
			return nil, true
		}
	}
	return nil, m.Focused()
}

func isPress(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress
}

func wheelDelta(msg tea.MouseMsg) int {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1
	case tea.MouseButtonWheelDown:
		return 1
	}
	return 0
}

// HandleMouse processes a mouse event and reports whether the view consumed
// it. Clicks on content are left to the host.
func (m *Model) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	l := m.Layout()

	if m.state.OverlayPresent() && l.Arrangement == ArrangeMinimal && !l.AppBar.Contains(msg.X, msg.Y) {
		r := m.overlayRect(l)
		if r.Contains(msg.X, msg.Y) {
			if m.state.Overlay != OverlayOpen {
				return nil, true
			}
			c := layoutColumn(m.cfg.Pane, PaneColumn, r.H-flyoutBorderW)
			return m.paneEvent(msg, c, msg.Y-r.Y-1), true
		}
		// modal barrier
		if isPress(msg) {
			return m.closeOverlay(), true
		}
		return nil, true
	}

	hit := l.HitTest(msg.X, msg.Y)
	if !isPress(msg) {
		if d := wheelDelta(msg); d != 0 && hit.Target == TargetPane {
			m.scroll.ctrl.ScrollBy(d)
			return nil, true
		}
		return nil, hit.Target == TargetTapCatcher
	}

	switch hit.Target {
	case TargetMenuToggle:
		return m.toggleMenu(l), true
	case TargetBack:
		return m.env.Navigator.Pop(), true
	case TargetTapCatcher:
		m.state = m.state.CollapseCompact()
		return nil, true
	case TargetPane:
		switch l.PaneKind {
		case PaneStrip:
			for _, c := range m.stripCells(l.Pane.W) {
				if hit.X >= c.x && hit.X < c.x+c.w && c.row.kind == rowItem {
					return m.Select(c.row.item), true
				}
			}
			return nil, true
		case PaneRail, PaneColumn:
			return m.paneEvent(msg, layoutColumn(m.cfg.Pane, l.PaneKind, l.Pane.H), hit.Y), true
		case PaneFlyout:
			return m.paneEvent(msg, layoutColumn(m.cfg.Pane, l.PaneKind, l.Pane.H-flyoutBorderW), hit.Y-1), true
		}
	}
	return nil, false
}

// paneEvent handles a click or wheel event y rows into a vertical pane.
func (m *Model) paneEvent(msg tea.MouseMsg, c columnLayout, y int) tea.Cmd {
	if d := wheelDelta(msg); d != 0 {
		m.scroll.ctrl.ScrollBy(d)
		return nil
	}
	if !isPress(msg) {
		return nil
	}
	r, ok := c.rowAt(y, m.scroll.ctrl.Offset())
	if !ok {
		return nil
	}
	switch r.kind {
	case rowToggle:
		m.state = m.state.ToggleCompact()
	case rowItem:
		return m.Select(r.item)
	}
	return nil
}

// overlayRect is the screen area of the mounted minimal pane.
func (m *Model) overlayRect(l Layout) Rect {
	return Rect{
		X: l.OverlayAt.X,
		Y: l.OverlayAt.Y,
		W: min(l.OpenWidth+flyoutBorderW, l.Size.W-l.OverlayAt.X),
		H: l.Size.H - l.OverlayAt.Y,
	}
}

// minimalPane is the overlay node mounted in minimal mode.
type minimalPane struct {
	m *Model
}

func (n minimalPane) View(width, height int) string {
	m := n.m
	if m.cfg.Pane == nil {
		return ""
	}
	r := m.overlayRect(m.Layout())
	w, h := min(r.W, width)-flyoutBorderW, min(r.H, height)-flyoutBorderW
	if w <= 0 || h <= 0 {
		return ""
	}
	inner := m.renderColumn(PaneColumn, listOverlay, Minimal, w, h)
	return m.env.Theme.Flyout.Render(inner)
}
