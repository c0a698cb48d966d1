package navview

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/navshell/internal/theme"
)

const frameInterval = time.Second / 60

// frameMsg drives running animations of the view with the given id.
type frameMsg struct {
	id int
}

// tween moves an integer from one value to another over a duration.
type tween struct {
	from, to int
	start    time.Time
	duration time.Duration
	curve    theme.Curve
}

func settled(v int) tween {
	return tween{from: v, to: v}
}

func (t tween) done(now time.Time) bool {
	return t.duration <= 0 || !now.Before(t.start.Add(t.duration))
}

func (t tween) value(now time.Time) int {
	if t.done(now) {
		return t.to
	}
	p := max(float64(now.Sub(t.start))/float64(t.duration), 0)
	if t.curve != nil {
		p = t.curve(p)
	}
	return t.from + int(math.Round(float64(t.to-t.from)*p))
}

func frame(id int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}
