// Package overlay mounts floating layers above a base view. It is the
// portal capability the navigation view uses for its minimal pane.
package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Point is a cell position relative to the top-left corner of the screen.
type Point struct {
	X, Y int
}

// Node is floating content. View receives the space left between the
// node's position and the bottom-right corner of the screen.
type Node interface {
	View(width, height int) string
}

// NodeFunc adapts a plain function to Node.
type NodeFunc func(width, height int) string

// View implements Node.
func (f NodeFunc) View(width, height int) string { return f(width, height) }

// Handle identifies a mounted layer.
type Handle interface {
	// Remove starts the exit animation. The returned completion resolves
	// once the layer is gone. Calling Remove twice returns the same
	// completion.
	Remove() *Completion
	// Removing reports whether Remove has been called.
	Removing() bool
}

// Portal mounts nodes above the main view.
type Portal interface {
	Mount(node Node, at Point) Handle
}

// Stack is a Portal that keeps layers in mount order and composes them over
// a base view. Layers being removed are drawn faint until their completion
// resolves, then pruned.
type Stack struct {
	layers  []*layer
	removal time.Duration
}

var _ Portal = (*Stack)(nil)

// NewStack returns an empty stack whose layers take removal to animate out.
func NewStack(removal time.Duration) *Stack {
	return &Stack{removal: removal}
}

type layer struct {
	stack *Stack
	node  Node
	at    Point
	done  *Completion
}

func (l *layer) Remove() *Completion {
	if l.done != nil {
		return l.done
	}
	l.done = NewCompletion()
	if l.stack.removal <= 0 {
		l.done.Resolve()
	} else {
		time.AfterFunc(l.stack.removal, l.done.Resolve)
	}
	return l.done
}

func (l *layer) Removing() bool { return l.done != nil }

func (l *layer) gone() bool { return l.done != nil && l.done.Resolved() }

// Mount adds node on top of the stack.
func (s *Stack) Mount(node Node, at Point) Handle {
	l := &layer{stack: s, node: node, at: at}
	s.layers = append(s.layers, l)
	return l
}

// Len returns the number of layers still mounted, including layers that are
// animating out.
func (s *Stack) Len() int {
	s.prune()
	return len(s.layers)
}

func (s *Stack) prune() {
	kept := s.layers[:0]
	for _, l := range s.layers {
		if !l.gone() {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(s.layers); i++ {
		s.layers[i] = nil
	}
	s.layers = kept
}

var closingStyle = lipgloss.NewStyle().Faint(true)

// Compose draws every mounted layer over base, which is width cells wide and
// height rows tall.
func (s *Stack) Compose(base string, width, height int) string {
	s.prune()
	for _, l := range s.layers {
		if l.at.X >= width || l.at.Y >= height {
			continue
		}
		view := l.node.View(width-l.at.X, height-l.at.Y)
		if l.Removing() {
			view = closingStyle.Render(view)
		}
		base = Place(base, view, l.at.X, l.at.Y, width)
	}
	return base
}

// Place draws block over base with its top-left corner at (x, y). Block
// lines replace the base cells they cover; anything past width is cut.
// ANSI sequences on both sides are preserved.
func Place(base, block string, x, y, width int) string {
	if x < 0 || x >= width {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}
		if x+w > width {
			line = ansi.Truncate(line, width-x, "")
			w = ansi.StringWidth(line)
		}

		b := baseLines[row]
		if bw := ansi.StringWidth(b); bw < width {
			b += strings.Repeat(" ", width-bw)
		}
		result := ansi.Cut(b, 0, x) + line
		if x+w < width {
			result += ansi.Cut(b, x+w, width)
		}
		baseLines[row] = result
	}
	return strings.Join(baseLines, "\n")
}
