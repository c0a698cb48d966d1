package navview

import (
	"fmt"
	"math"
)

// DisplayMode selects how the navigation pane is arranged.
type DisplayMode uint8

const (
	Top     DisplayMode = iota // horizontal strip under the app bar
	Compact                    // icon-only rail, expandable into a flyout
	Open                       // full-width column
	Minimal                    // hidden; reachable through the menu overlay
	Auto                       // picked from the available width
)

func (m DisplayMode) String() string {
	switch m {
	case Top:
		return "top"
	case Compact:
		return "compact"
	case Open:
		return "open"
	case Minimal:
		return "minimal"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("DisplayMode(%d)", m)
	}
}

// ParseDisplayMode parses the names returned by String.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "top":
		return Top, nil
	case "compact":
		return Compact, nil
	case "open":
		return Open, nil
	case "minimal":
		return Minimal, nil
	case "auto", "":
		return Auto, nil
	}
	return Auto, fmt.Errorf("unknown display mode %q", s)
}

// Width breakpoints for Auto, in logical units.
const (
	MinimalMaxWidth = 640  // widths up to and including this are minimal
	OpenMinWidth    = 1008 // widths from this up are open
)

// Unbounded marks a width constraint with no upper limit.
const Unbounded = math.MaxInt

// Resolve returns the concrete mode for requested. Explicit modes are
// returned unchanged. Auto is bucketed by width; an Unbounded width is
// replaced by viewportWidth first. Resolve never returns Auto.
func Resolve(requested DisplayMode, width, viewportWidth int) DisplayMode {
	if requested != Auto {
		return requested
	}
	if width == Unbounded {
		width = viewportWidth
	}
	switch {
	case width <= MinimalMaxWidth:
		return Minimal
	case width < OpenMinWidth:
		return Compact
	default:
		return Open
	}
}

// DefaultUnitsPerCell is the number of logical units one terminal column
// stands for. An 80-column terminal is 640 units wide.
const DefaultUnitsPerCell = 8

// Metric converts between terminal cells and logical units.
type Metric struct {
	UnitsPerCell int
}

func (m Metric) upc() int {
	if m.UnitsPerCell <= 0 {
		return DefaultUnitsPerCell
	}
	return m.UnitsPerCell
}

// Units converts a width in cells to logical units.
func (m Metric) Units(cells int) int {
	return cells * m.upc()
}

// Cells converts logical units to cells, rounding to nearest. Any positive
// length is at least one cell.
func (m Metric) Cells(units int) int {
	if units <= 0 {
		return 0
	}
	upc := m.upc()
	c := (units + upc/2) / upc
	if c < 1 {
		c = 1
	}
	return c
}
