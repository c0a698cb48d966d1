package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/tnguyen21/navshell/internal/config"
	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/pane"
)

func testModel() *Model {
	cfg := config.Default()
	cfg.Animation.PaneMS = 0
	cfg.Animation.OverlayMS = 0
	return New(cfg, nil)
}

func sized(m *Model, w, h int) *Model {
	_, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	runCmds(m, cmd)
	return m
}

// runCmds executes cmd and feeds every resulting message back into m until
// nothing is left to run.
func runCmds(m *Model, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for n := 0; len(queue) > 0 && n < 200; n++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			seen = append(seen, msg)
		default:
			seen = append(seen, msg)
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return seen
}

func press(m *Model, k string) []tea.Msg {
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return runCmds(m, cmd)
}

func clickAt(m *Model, x, y int) {
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	runCmds(m, cmd)
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	m := testModel()

	if len(m.panes) != 3 {
		t.Fatalf("expected 3 panes, got %d", len(m.panes))
	}
	wantIDs := []pane.PaneID{pane.PaneHome, pane.PaneActivity, pane.PaneSettings}
	for i, id := range wantIDs {
		if m.panes[i].ID() != id {
			t.Errorf("pane %d = %d, want %d", i, m.panes[i].ID(), id)
		}
	}
	if m.activePane != 0 {
		t.Errorf("activePane should start at 0, got %d", m.activePane)
	}
	if m.mode != navview.Auto {
		t.Errorf("mode = %v, want auto", m.mode)
	}
	if m.nav == nil || m.portal == nil || m.back == nil {
		t.Fatal("navigation view, portal and back-stack must be set")
	}
}

func TestNavConfig(t *testing.T) {
	m := testModel()
	cfg := m.navConfig()

	if cfg.Pane == nil {
		t.Fatal("pane spec should be set")
	}
	if len(cfg.Pane.Items) != 2 || len(cfg.Pane.FooterItems) != 1 {
		t.Fatalf("items, footer = %d, %d, want 2, 1", len(cfg.Pane.Items), len(cfg.Pane.FooterItems))
	}
	if cfg.Pane.FooterItems[0].Title != "Settings" {
		t.Errorf("footer item = %q, want Settings", cfg.Pane.FooterItems[0].Title)
	}
	if cfg.AppBar.Title != "navshell · Home" {
		t.Errorf("title = %q", cfg.AppBar.Title)
	}
	if !cfg.AppBar.AutomaticallyImplyLeading {
		t.Error("imply leading should follow config")
	}
	if cfg.Pane.Size.OpenWidth != 320 || cfg.Pane.Size.CompactWidth != 48 {
		t.Errorf("size = %+v", cfg.Pane.Size)
	}
}

func TestInvalidClipFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Clip = "rounded"
	m := New(cfg, nil)
	if m.clip != navview.ClipHardEdge {
		t.Errorf("clip = %v, want hard edge", m.clip)
	}
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

func TestArrangementFollowsWidth(t *testing.T) {
	tests := []struct {
		width int
		want  navview.Arrangement
	}{
		{60, navview.ArrangeMinimal},
		{100, navview.ArrangeCompact},
		{150, navview.ArrangeOpen},
	}
	for _, tt := range tests {
		m := sized(testModel(), tt.width, 30)
		if got := m.nav.Layout().Arrangement; got != tt.want {
			t.Errorf("width %d: arrangement = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestResizeRecordsModeChange(t *testing.T) {
	m := sized(testModel(), 150, 30)
	sized(m, 60, 30)
	if m.activity.Badge() != 1 {
		t.Errorf("activity badge = %d, want 1 mode change", m.activity.Badge())
	}
}

func TestNavLeavesStatusRow(t *testing.T) {
	m := sized(testModel(), 150, 40)
	if got := m.nav.Layout().Size.H; got != 39 {
		t.Errorf("nav height = %d, want 39", got)
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	if v := testModel().View(); v != "" {
		t.Errorf("View() before size = %q, want empty", v)
	}
}

func TestViewDimensions(t *testing.T) {
	for _, w := range []int{60, 100, 150} {
		m := sized(testModel(), w, 30)
		lines := strings.Split(m.View(), "\n")
		if len(lines) != 30 {
			t.Errorf("width %d: %d lines, want 30", w, len(lines))
		}
		for i, line := range lines {
			if got := ansi.StringWidth(line); got != w {
				t.Errorf("width %d: line %d is %d cells", w, i, got)
				break
			}
		}
	}
}

func TestViewShowsPagesAndStatus(t *testing.T) {
	m := sized(testModel(), 150, 30)
	v := ansi.Strip(m.View())
	for _, want := range []string{"Home", "Activity", "Settings", "auto→open", "q=quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// Page routing
// ---------------------------------------------------------------------------

func TestPageKeySwitches(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "2")

	if m.activePane != 1 {
		t.Fatalf("activePane = %d, want 1", m.activePane)
	}
	if m.back.Len() != 1 {
		t.Errorf("back depth = %d, want 1", m.back.Len())
	}
	if got := m.nav.Config().Pane.Selected; got != 1 {
		t.Errorf("pane selection = %d, want 1", got)
	}
	if m.activity.Badge() != 0 {
		t.Errorf("activity badge = %d, want 0 while showing", m.activity.Badge())
	}
}

func TestPageKeyOutOfRange(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "9")
	if m.activePane != 0 {
		t.Errorf("activePane = %d, want 0", m.activePane)
	}
}

func TestBackRestoresPreviousPage(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "3")
	press(m, "esc")

	if m.activePane != 0 {
		t.Errorf("activePane = %d, want 0", m.activePane)
	}
	if m.back.CanPop() {
		t.Error("back-stack should be empty")
	}
	if m.activity.Badge() != 2 {
		t.Errorf("activity badge = %d, want 2 (select and back)", m.activity.Badge())
	}
}

func TestBackButtonFollowsStack(t *testing.T) {
	m := sized(testModel(), 150, 30)
	if m.nav.Layout().Leading != navview.LeadingNone {
		t.Fatal("no back button on the root page")
	}
	press(m, "2")
	if m.nav.Layout().Leading != navview.LeadingBack {
		t.Fatal("back button should appear once a page is pushed")
	}
	clickAt(m, 0, 0)
	if m.activePane != 0 {
		t.Errorf("activePane = %d after back click, want 0", m.activePane)
	}
	if m.nav.Layout().Leading != navview.LeadingNone {
		t.Error("back button should go away with the stack")
	}
}

func TestOpenTopicAndBack(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "enter")

	if m.home.Topic() != "Display modes" {
		t.Fatalf("Topic() = %q, want Display modes", m.home.Topic())
	}
	if m.back.Len() != 1 {
		t.Errorf("back depth = %d, want 1", m.back.Len())
	}
	if !strings.Contains(m.title(), "› Display modes") {
		t.Errorf("title = %q, want topic", m.title())
	}

	press(m, "esc")
	if m.home.Topic() != "" {
		t.Errorf("Topic() = %q after back, want the list", m.home.Topic())
	}
}

func TestBackToTopic(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "enter")
	press(m, "2")
	press(m, "esc")

	if m.activePane != 0 {
		t.Fatalf("activePane = %d, want 0", m.activePane)
	}
	if m.home.Topic() != "Display modes" {
		t.Errorf("Topic() = %q, want the topic restored", m.home.Topic())
	}
}

func TestMouseSelectsPage(t *testing.T) {
	m := sized(testModel(), 150, 30)
	// app bar, then the pane header row, then Home and Activity
	clickAt(m, 5, 3)
	if m.activePane != 1 {
		t.Errorf("activePane = %d, want 1", m.activePane)
	}
}

// ---------------------------------------------------------------------------
// Minimal overlay
// ---------------------------------------------------------------------------

func TestMenuKeyOpensOverlay(t *testing.T) {
	m := sized(testModel(), 60, 30)
	press(m, " ")

	if m.nav.State().Overlay != navview.OverlayOpen {
		t.Fatalf("overlay = %v, want open", m.nav.State().Overlay)
	}
	if m.portal.Len() != 1 {
		t.Errorf("portal layers = %d, want 1", m.portal.Len())
	}
	if !strings.Contains(ansi.Strip(m.View()), "Activity") {
		t.Error("overlay should list the pages")
	}

	// Page keys do not reach the shell while the overlay has focus.
	press(m, "3")
	if m.activePane != 0 {
		t.Errorf("activePane = %d, want 0", m.activePane)
	}

	press(m, "tab")
	if m.activePane != 1 {
		t.Errorf("activePane = %d after tab, want 1", m.activePane)
	}
	if m.nav.State().Overlay != navview.OverlayClosed {
		t.Errorf("overlay = %v, want closed after selection", m.nav.State().Overlay)
	}
	if m.portal.Len() != 0 {
		t.Errorf("portal layers = %d, want 0", m.portal.Len())
	}
}

func TestOverlayEventsRecorded(t *testing.T) {
	m := sized(testModel(), 60, 30)
	msgs := press(m, " ")
	msgs = append(msgs, press(m, "esc")...)

	var opened, closed bool
	for _, msg := range msgs {
		switch msg.(type) {
		case navview.OverlayOpenedMsg:
			opened = true
		case navview.OverlayClosedMsg:
			closed = true
		}
	}
	if !opened || !closed {
		t.Errorf("opened, closed = %v, %v, want both", opened, closed)
	}
	if m.activity.Badge() != 2 {
		t.Errorf("activity badge = %d, want 2", m.activity.Badge())
	}
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

func TestSettingsChangesDisplayMode(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "3")
	press(m, "j") // auto → top
	press(m, "enter")

	if m.mode != navview.Top {
		t.Fatalf("mode = %v, want top", m.mode)
	}
	if got := m.nav.Layout().Arrangement; got != navview.ArrangeTop {
		t.Errorf("arrangement = %v, want top", got)
	}
}

func TestSettingsTogglesClip(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "3")
	press(m, "c")

	if m.clip != navview.ClipNone {
		t.Fatalf("clip = %v, want none", m.clip)
	}
	if m.nav.Layout().ClipContent {
		t.Error("content should no longer be clipped")
	}
}

// ---------------------------------------------------------------------------
// Shell keys
// ---------------------------------------------------------------------------

func TestHelpToggle(t *testing.T) {
	m := sized(testModel(), 150, 30)
	press(m, "?")
	if !m.showHelp {
		t.Fatal("help should be shown")
	}
	if !strings.Contains(ansi.Strip(m.View()), "quit") {
		t.Error("help view should list the quit key")
	}
	press(m, "esc")
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	m := sized(testModel(), 150, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	var quit bool
	for _, msg := range runCmds(m, cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Error("q should quit")
	}
}

func TestStatusBarByWidth(t *testing.T) {
	tests := []struct {
		width int
		want  string
		not   string
	}{
		{30, "q=quit", "auto→"},
		{60, "auto→minimal", "space="},
		{100, "space=", ""},
	}
	for _, tt := range tests {
		m := sized(testModel(), tt.width, 20)
		bar := ansi.Strip(m.renderStatusBar())
		if !strings.Contains(bar, tt.want) {
			t.Errorf("width %d: status bar %q missing %q", tt.width, bar, tt.want)
		}
		if tt.not != "" && strings.Contains(bar, tt.not) {
			t.Errorf("width %d: status bar %q should not contain %q", tt.width, bar, tt.not)
		}
	}
}
