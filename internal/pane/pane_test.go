package pane

import (
	"testing"
	"time"
)

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hell…"},
		{"maxLen 1", "hello", 1, "…"},
		{"maxLen 0", "hello", 0, ""},
		{"negative maxLen", "hello", -1, ""},
		{"empty string", "", 5, ""},
		{"wide runes", "日本語テスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithEllipsis(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"just now", 30 * time.Second, "just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"one minute", 1 * time.Minute, "1m ago"},
		{"hours", 2 * time.Hour, "2h ago"},
		{"days", 3 * 24 * time.Hour, "3d ago"},
		{"zero", 0, "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAge(tt.d)
			if got != tt.want {
				t.Errorf("FormatAge(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestEventStyle(t *testing.T) {
	kinds := []EventKind{
		EventModeChanged, EventOverlayOpened, EventOverlayClosed,
		EventSelection, EventBack, EventSetting,
	}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			// Verify it returns a usable style (renders without panic).
			_ = EventStyle(k).Render("test")
		})
	}
}

func TestPaneIDValues(t *testing.T) {
	if PaneHome != 0 {
		t.Errorf("PaneHome = %d, want 0", PaneHome)
	}
	if PaneActivity != 1 {
		t.Errorf("PaneActivity = %d, want 1", PaneActivity)
	}
	if PaneSettings != 2 {
		t.Errorf("PaneSettings = %d, want 2", PaneSettings)
	}
}

func TestCenterPad(t *testing.T) {
	if got := centerPad("ab", 6); got != "  ab" {
		t.Errorf("centerPad = %q, want %q", got, "  ab")
	}
	if got := centerPad("toolong", 3); got != "toolong" {
		t.Errorf("centerPad = %q, want unchanged", got)
	}
}
