package navview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// ScrollController holds the scroll position of the pane list. One
// controller serves whichever pane list is currently drawn, so the offset
// survives switching between arrangements.
type ScrollController struct {
	// KeepOffset keeps the offset when the controller moves to another
	// list. Without it the offset resets on every move.
	KeepOffset bool

	vp       viewport.Model
	offset   int
	attached string
	attaches int
	disposed bool
}

// NewScrollController returns a controller at offset zero.
func NewScrollController(keepOffset bool) *ScrollController {
	return &ScrollController{
		KeepOffset: keepOffset,
		vp:         viewport.New(0, 0),
	}
}

// Offset returns the index of the first visible list row.
func (c *ScrollController) Offset() int { return c.offset }

// SetOffset moves the list so row n is first. Negative values clamp to zero;
// the upper bound is applied the next time the list is drawn.
func (c *ScrollController) SetOffset(n int) {
	c.offset = max(n, 0)
}

// ScrollBy moves the offset by delta rows.
func (c *ScrollController) ScrollBy(delta int) {
	c.SetOffset(c.offset + delta)
}

// Attached returns the id of the list currently using the controller.
func (c *ScrollController) Attached() string { return c.attached }

// Attaches counts how many times the controller moved to a different list.
func (c *ScrollController) Attaches() int { return c.attaches }

// Dispose releases the controller. A disposed controller must not be drawn.
func (c *ScrollController) Dispose() {
	c.disposed = true
	c.attached = ""
}

// Disposed reports whether Dispose was called.
func (c *ScrollController) Disposed() bool { return c.disposed }

func (c *ScrollController) attach(list string) {
	if c.disposed {
		fatal(ErrInvalidHost, "scroll controller used after dispose")
	}
	if c.attached == list {
		return
	}
	if c.attached != "" && !c.KeepOffset {
		c.offset = 0
	}
	c.attached = list
	c.attaches++
}

// visibleOffset clamps the offset for a list of n rows shown height at a
// time, the same way the viewport does.
func (c *ScrollController) visibleOffset(n, height int) int {
	return clampOffset(c.offset, n, height)
}

func clampOffset(offset, n, height int) int {
	return min(max(offset, 0), max(n-height, 0))
}

// ensureVisible scrolls the least amount needed for row to be on screen.
func (c *ScrollController) ensureVisible(row, height int) {
	if height <= 0 || row < 0 {
		return
	}
	switch {
	case row < c.offset:
		c.offset = row
	case row >= c.offset+height:
		c.offset = row - height + 1
	}
}

// view draws rows through the viewport for list, clamping and keeping the
// offset.
func (c *ScrollController) view(list string, rows []string, width, height int) string {
	c.attach(list)
	c.vp.Width = width
	c.vp.Height = height
	c.vp.SetContent(strings.Join(rows, "\n"))
	c.vp.SetYOffset(c.visibleOffset(len(rows), height))
	c.offset = c.vp.YOffset
	return c.vp.View()
}

// scrollState owns the controller of one navigation view instance and
// reconciles it with a controller supplied by the host.
type scrollState struct {
	ctrl  *ScrollController
	owned bool
}

func newScrollState(host *ScrollController) scrollState {
	if host != nil {
		return scrollState{ctrl: host}
	}
	return scrollState{ctrl: NewScrollController(true), owned: true}
}

// reconcile adopts a different host controller. Controllers the state
// allocated itself are disposed when replaced; host controllers never are.
func (s *scrollState) reconcile(host *ScrollController) {
	switch {
	case host == s.ctrl:
		return
	case host != nil:
		if s.owned {
			s.ctrl.Dispose()
		}
		s.ctrl, s.owned = host, false
	case !s.owned:
		// the host withdrew its controller
		s.ctrl, s.owned = NewScrollController(true), true
	}
}

func (s *scrollState) dispose() {
	if s.owned && !s.ctrl.Disposed() {
		s.ctrl.Dispose()
	}
}
