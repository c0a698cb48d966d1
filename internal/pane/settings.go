package pane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/theme"
)

// SetDisplayModeMsg asks the host to request a different display mode.
type SetDisplayModeMsg struct {
	Mode navview.DisplayMode
}

// SetClipMsg asks the host to change how content is clipped.
type SetClipMsg struct {
	Clip navview.Clip
}

var settingModes = []navview.DisplayMode{
	navview.Auto,
	navview.Top,
	navview.Compact,
	navview.Open,
	navview.Minimal,
}

// SettingsPane picks the requested display mode and the clip behavior.
type SettingsPane struct {
	mode   navview.DisplayMode
	clip   navview.Clip
	cursor int
	width  int
	height int
	keys   settingsKeys
}

type settingsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Clip   key.Binding
}

// NewSettingsPane creates a Settings pane showing mode and clip as current.
func NewSettingsPane(mode navview.DisplayMode, clip navview.Clip) *SettingsPane {
	p := &SettingsPane{
		mode: mode,
		clip: clip,
		keys: settingsKeys{
			Up: key.NewBinding(
				key.WithKeys("k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("j", "down"),
			),
			Select: key.NewBinding(
				key.WithKeys("enter"),
			),
			Clip: key.NewBinding(
				key.WithKeys("c"),
			),
		},
	}
	for i, m := range settingModes {
		if m == mode {
			p.cursor = i
		}
	}
	return p
}

func (p *SettingsPane) ID() PaneID        { return PaneSettings }
func (p *SettingsPane) Title() string      { return "Settings" }
func (p *SettingsPane) ShortTitle() string { return "⚙" }
func (p *SettingsPane) Badge() int         { return 0 }

func (p *SettingsPane) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Mode returns the selected display mode.
func (p *SettingsPane) Mode() navview.DisplayMode { return p.mode }

// Clip returns the selected clip behavior.
func (p *SettingsPane) Clip() navview.Clip { return p.clip }

func (p *SettingsPane) Init() tea.Cmd {
	return nil
}

func (p *SettingsPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, p.keys.Down):
		if p.cursor < len(settingModes)-1 {
			p.cursor++
		}
	case key.Matches(km, p.keys.Select):
		p.mode = settingModes[p.cursor]
		mode := p.mode
		return p, func() tea.Msg { return SetDisplayModeMsg{Mode: mode} }
	case key.Matches(km, p.keys.Clip):
		if p.clip == navview.ClipNone {
			p.clip = navview.ClipHardEdge
		} else {
			p.clip = navview.ClipNone
		}
		clip := p.clip
		return p, func() tea.Msg { return SetClipMsg{Clip: clip} }
	}
	return p, nil
}

func (p *SettingsPane) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.PageHeaderStyle.Render(TruncateWithEllipsis("─── SETTINGS ───", p.width)))
	b.WriteString("\n\n")
	b.WriteString(theme.MutedStyle.Render("  Display mode"))
	b.WriteString("\n")

	for i, m := range settingModes {
		radio := "○"
		if m == p.mode {
			radio = "●"
		}
		line := TruncateWithEllipsis(fmt.Sprintf("  %s %s", radio, m), p.width)
		if i == p.cursor && strings.HasPrefix(line, " ") {
			line = theme.AccentStyle.Bold(true).Render("▸" + line[1:])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	clip := "hard edge"
	if p.clip == navview.ClipNone {
		clip = "none"
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Clip content: %s", theme.AccentStyle.Render(clip)))
	b.WriteString("\n\n")
	b.WriteString(theme.MutedStyle.Render(TruncateWithEllipsis("j/k move  enter apply  c=toggle clip", p.width)))
	return b.String()
}

// Ensure SettingsPane implements Pane at compile time.
var _ Pane = (*SettingsPane)(nil)
