package navview

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnguyen21/navshell/internal/l10n"
	"github.com/tnguyen21/navshell/internal/theme"
)

// panicErr runs f and returns the error it panicked with, or nil.
func panicErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	f()
	return nil
}

type fakeNavigator struct {
	depth  int
	popped int
}

func (n *fakeNavigator) CanPop() bool { return n.depth > 0 }

func (n *fakeNavigator) Pop() tea.Cmd {
	n.popped++
	n.depth--
	return nil
}

func testEnv() Env {
	return Env{Theme: theme.Default(), Strings: l10n.English()}
}

func testItems(n int) []PaneItem {
	items := make([]PaneItem, n)
	for i := range items {
		items[i] = PaneItem{Icon: "•", Title: fmt.Sprintf("Page %d", i)}
	}
	return items
}

func testConfig(mode DisplayMode) Config {
	return Config{
		AppBar: &AppBar{Title: "Title"},
		Pane:   &PaneSpec{DisplayMode: mode, Items: testItems(3)},
		Shape:  DefaultShape(),
	}
}

func TestComposeAutoNarrowIsMinimal(t *testing.T) {
	// 62 cells is 496 logical units
	l := Compose(testConfig(Auto), Constraints{Width: 62, Height: 20, ViewportWidth: 62}, State{}, testEnv())

	assert.Equal(t, Minimal, l.Mode)
	assert.Equal(t, ArrangeMinimal, l.Arrangement)
	assert.Equal(t, PaneHidden, l.PaneKind)
	assert.True(t, l.MenuToggle)
	assert.False(t, l.ClipContent, "minimal never clips")
	assert.Equal(t, Rect{W: 62, H: 1}, l.AppBar)
	assert.Equal(t, Rect{Y: 1, W: 62, H: 19}, l.Content)
	assert.Equal(t, l.Content, l.ContentInner)
	assert.Equal(t, 0, l.Inset)
}

func TestComposeAutoWideIsOpen(t *testing.T) {
	// 150 cells is 1200 logical units
	l := Compose(testConfig(Auto), Constraints{Width: 150, Height: 40, ViewportWidth: 150}, State{}, testEnv())

	assert.Equal(t, Open, l.Mode)
	assert.Equal(t, PaneColumn, l.PaneKind)
	assert.Equal(t, 40, l.OpenWidth)
	assert.Equal(t, Rect{Y: 1, W: 40, H: 39}, l.Pane)
	assert.Equal(t, Rect{X: 40, Y: 1, W: 110, H: 39}, l.Content)
	assert.True(t, l.ClipContent)
	assert.Equal(t, Rect{X: 41, Y: 2, W: 109, H: 38}, l.ContentInner)
	assert.Equal(t, 40, l.Inset)
	assert.False(t, l.MenuToggle)
}

func TestComposeBoundaries(t *testing.T) {
	tests := []struct {
		cells int
		want  DisplayMode
	}{
		{80, Minimal},
		{81, Compact},
		{125, Compact},
		{126, Open},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.cells), func(t *testing.T) {
			l := Compose(testConfig(Auto), Constraints{Width: tt.cells, Height: 10}, State{}, testEnv())
			assert.Equal(t, tt.want, l.Mode)
		})
	}
}

func TestComposeUnboundedUsesViewport(t *testing.T) {
	l := Compose(testConfig(Auto), Constraints{Width: Unbounded, Height: 10, ViewportWidth: 150}, State{}, testEnv())
	assert.Equal(t, Open, l.Mode)
	assert.Equal(t, 150, l.Size.W)

	l = Compose(testConfig(Auto), Constraints{Width: Unbounded, Height: 10, ViewportWidth: 60}, State{}, testEnv())
	assert.Equal(t, Minimal, l.Mode)
}

func TestComposeExplicitModes(t *testing.T) {
	c := Constraints{Width: 100, Height: 20}

	top := Compose(testConfig(Top), c, State{}, testEnv())
	assert.Equal(t, PaneStrip, top.PaneKind)
	assert.Equal(t, Rect{Y: 1, W: 100, H: 1}, top.Pane)
	assert.Equal(t, Rect{Y: 2, W: 100, H: 18}, top.Content)
	assert.Equal(t, 0, top.Inset)

	compact := Compose(testConfig(Compact), c, State{}, testEnv())
	assert.Equal(t, PaneRail, compact.PaneKind)
	assert.Equal(t, Rect{Y: 1, W: 6, H: 19}, compact.Pane)
	assert.Equal(t, Rect{X: 6, Y: 1, W: 94, H: 19}, compact.Content)
	assert.Equal(t, 6, compact.Inset)
	assert.True(t, compact.TapCatcher.Empty())

	open := Compose(testConfig(Open), Constraints{Width: 30, Height: 20}, State{}, testEnv())
	assert.Equal(t, Open, open.Mode, "explicit modes ignore width")
	assert.Equal(t, 30, open.OpenWidth, "pane never exceeds the available width")
}

func TestComposeCompactExpanded(t *testing.T) {
	st := State{Mode: Compact, CompactExpanded: true}
	l := Compose(testConfig(Compact), Constraints{Width: 100, Height: 20}, st, testEnv())

	assert.Equal(t, PaneFlyout, l.PaneKind)
	assert.Equal(t, Rect{Y: 1, W: 42, H: 19}, l.Pane)
	assert.Equal(t, Rect{X: 6, Y: 1, W: 94, H: 19}, l.Content, "content keeps the rail inset")
	assert.Equal(t, Rect{W: 100, H: 20}, l.TapCatcher)
}

func TestComposeMinimalOverlayInset(t *testing.T) {
	st := State{Mode: Minimal, Overlay: OverlayOpen}
	l := Compose(testConfig(Minimal), Constraints{Width: 60, Height: 20}, st, testEnv())
	assert.Equal(t, 40, l.Inset)
	assert.Equal(t, 1, l.OverlayAt.Y)

	st.Overlay = OverlayClosing
	l = Compose(testConfig(Minimal), Constraints{Width: 60, Height: 20}, st, testEnv())
	assert.Equal(t, 0, l.Inset, "closing overlay releases the inset")
}

func TestComposeWithoutPane(t *testing.T) {
	cfg := Config{AppBar: &AppBar{Title: "x"}}
	l := Compose(cfg, Constraints{Width: 50, Height: 10}, State{}, testEnv())
	assert.Equal(t, ArrangeNone, l.Arrangement)
	assert.Equal(t, PaneHidden, l.PaneKind)
	assert.Equal(t, Rect{Y: 1, W: 50, H: 9}, l.Content)

	cfg.AppBar = nil
	l = Compose(cfg, Constraints{Width: 50, Height: 10}, State{}, testEnv())
	assert.True(t, l.AppBar.Empty())
	assert.Equal(t, Rect{W: 50, H: 10}, l.Content)
}

func TestComposeClipNone(t *testing.T) {
	cfg := testConfig(Open)
	cfg.Clip = ClipNone
	l := Compose(cfg, Constraints{Width: 150, Height: 40}, State{}, testEnv())
	assert.False(t, l.ClipContent)
	assert.Equal(t, l.Content, l.ContentInner)
}

func TestComposeIsIdempotent(t *testing.T) {
	cfg := testConfig(Auto)
	c := Constraints{Width: 110, Height: 30}
	st := State{Mode: Compact}
	first := Compose(cfg, c, st, testEnv())
	second := Compose(cfg, c, st, testEnv())
	assert.Equal(t, first, second)
	assert.Equal(t, Auto, cfg.Pane.DisplayMode, "compose must not modify the host's pane")
}

func TestComposeLeading(t *testing.T) {
	nav := &fakeNavigator{depth: 1}
	env := testEnv()
	env.Navigator = nav

	cfg := testConfig(Open)
	cfg.AppBar.AutomaticallyImplyLeading = true
	l := Compose(cfg, Constraints{Width: 150, Height: 10}, State{}, env)
	assert.Equal(t, LeadingBack, l.Leading)
	assert.Equal(t, 3, l.LeadingWidth)

	top := testConfig(Top)
	top.AppBar.AutomaticallyImplyLeading = true
	l = Compose(top, Constraints{Width: 150, Height: 10}, State{}, env)
	assert.Equal(t, LeadingNone, l.Leading, "top mode never implies a back button")

	nav.depth = 0
	l = Compose(cfg, Constraints{Width: 150, Height: 10}, State{}, env)
	assert.Equal(t, LeadingNone, l.Leading)

	nav.depth = 1
	cfg.AppBar.Leading = "@"
	l = Compose(cfg, Constraints{Width: 150, Height: 10}, State{}, env)
	assert.Equal(t, LeadingCustom, l.Leading)
}

func TestComposeInvalidHost(t *testing.T) {
	err := panicErr(func() {
		Compose(testConfig(Open), Constraints{Width: 10, Height: 10}, State{}, Env{Strings: l10n.English()})
	})
	assert.ErrorIs(t, err, ErrInvalidHost)

	err = panicErr(func() {
		Compose(testConfig(Open), Constraints{Width: 10, Height: 10}, State{}, Env{Theme: theme.Default()})
	})
	assert.ErrorIs(t, err, ErrInvalidHost)
}

func TestHitTest(t *testing.T) {
	env := testEnv()
	env.Navigator = &fakeNavigator{depth: 1}
	cfg := testConfig(Open)
	cfg.AppBar.AutomaticallyImplyLeading = true
	l := Compose(cfg, Constraints{Width: 150, Height: 40}, State{}, env)

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"back button", 1, 0, Hit{Target: TargetBack, X: 1}},
		{"app bar", 60, 0, Hit{Target: TargetAppBar, X: 60}},
		{"pane", 5, 3, Hit{Target: TargetPane, X: 5, Y: 2}},
		{"content", 45, 5, Hit{Target: TargetContent, X: 5, Y: 4}},
		{"outside", 200, 5, Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.HitTest(tt.x, tt.y))
		})
	}
}

func TestHitTestMinimalToggle(t *testing.T) {
	l := Compose(testConfig(Minimal), Constraints{Width: 60, Height: 20}, State{}, testEnv())
	require.Equal(t, 3, l.ToggleWidth)
	assert.Equal(t, TargetMenuToggle, l.HitTest(1, 0).Target)
	assert.Equal(t, TargetAppBar, l.HitTest(10, 0).Target)
	assert.Equal(t, TargetContent, l.HitTest(10, 5).Target)
}

func TestHitTestTapCatcher(t *testing.T) {
	st := State{Mode: Compact, CompactExpanded: true}
	l := Compose(testConfig(Compact), Constraints{Width: 100, Height: 20}, st, testEnv())
	assert.Equal(t, TargetPane, l.HitTest(5, 5).Target)
	assert.Equal(t, TargetTapCatcher, l.HitTest(80, 5).Target)
	assert.Equal(t, TargetTapCatcher, l.HitTest(80, 0).Target, "app bar is covered too")
}
