package overlay

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Completion is a one-shot signal. It resolves exactly once; further calls
// to Resolve are ignored.
type Completion struct {
	once sync.Once
	done chan struct{}
}

// NewCompletion returns an unresolved Completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolve marks the completion as done. Safe to call from any goroutine.
func (c *Completion) Resolve() {
	c.once.Do(func() { close(c.done) })
}

// Done returns a channel that is closed once the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Resolved reports whether Resolve has been called.
func (c *Completion) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Await returns a command that blocks until the completion resolves and then
// delivers the message built by msg to the update loop.
func (c *Completion) Await(msg func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-c.done
		return msg()
	}
}
