// Package navstack is the host's back-stack. The root page is implicit, so
// an empty stack cannot go back.
package navstack

import tea "github.com/charmbracelet/bubbletea"

// PoppedMsg is delivered after Pop removes an entry.
type PoppedMsg[T any] struct {
	Entry T
	Depth int // entries left after the pop
}

// Stack holds pushed routes above the root page.
type Stack[T any] struct {
	entries []T
}

// Push adds v on top.
func (s *Stack[T]) Push(v T) {
	s.entries = append(s.entries, v)
}

// Top returns the topmost entry.
func (s *Stack[T]) Top() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of pushed entries.
func (s *Stack[T]) Len() int { return len(s.entries) }

// CanPop reports whether there is anything to go back from.
func (s *Stack[T]) CanPop() bool { return len(s.entries) > 0 }

// Pop removes the top entry and returns a command announcing it. It returns
// nil when the stack is empty.
func (s *Stack[T]) Pop() tea.Cmd {
	if !s.CanPop() {
		return nil
	}
	last := len(s.entries) - 1
	v := s.entries[last]
	var zero T
	s.entries[last] = zero
	s.entries = s.entries[:last]
	depth := len(s.entries)
	return func() tea.Msg {
		return PoppedMsg[T]{Entry: v, Depth: depth}
	}
}

// Clear drops every entry.
func (s *Stack[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
