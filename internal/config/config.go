package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tnguyen21/navshell/internal/navview"
	"github.com/tnguyen21/navshell/internal/theme"
)

const DefaultConfigPath = "~/.config/navshell/navshell.yaml"

type AppBar struct {
	Title        string `yaml:"title"`
	ImplyLeading bool   `yaml:"imply_leading"`
}

// Pane widths are in logical units.
type Pane struct {
	OpenWidth    int `yaml:"open_width"`
	CompactWidth int `yaml:"compact_width"`
}

type Animation struct {
	PaneMS    int    `yaml:"pane_ms"`
	OverlayMS int    `yaml:"overlay_ms"`
	Curve     string `yaml:"curve"`
}

type Config struct {
	Port         int               `yaml:"port"`
	HostKeyDir   string            `yaml:"host_key_dir"`
	DisplayMode  string            `yaml:"display_mode"`
	UnitsPerCell int               `yaml:"units_per_cell"`
	AppBar       AppBar            `yaml:"app_bar"`
	Pane         Pane              `yaml:"pane"`
	Animation    Animation         `yaml:"animation"`
	Clip         string            `yaml:"clip"`
	Strings      map[string]string `yaml:"strings"`
	LogLevel     string            `yaml:"log_level"`
	LogFile      string            `yaml:"log_file"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Port:         2222,
		HostKeyDir:   filepath.Join(home, ".ssh"),
		DisplayMode:  "auto",
		UnitsPerCell: navview.DefaultUnitsPerCell,
		AppBar: AppBar{
			Title:        "navshell",
			ImplyLeading: true,
		},
		Pane: Pane{
			OpenWidth:    navview.DefaultOpenWidth,
			CompactWidth: navview.DefaultCompactWidth,
		},
		Animation: Animation{
			PaneMS:    200,
			OverlayMS: 167,
			Curve:     "ease_in_out",
		},
		Clip:     "hard_edge",
		LogLevel: "info",
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func Load(path string) (Config, error) {
	cfg := Default()

	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
	}

	cfg.HostKeyDir = expandPath(cfg.HostKeyDir)
	cfg.LogFile = expandPath(cfg.LogFile)

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", cfg.Port)
	}

	if _, err := navview.ParseDisplayMode(cfg.DisplayMode); err != nil {
		return fmt.Errorf("display_mode: %w", err)
	}
	if cfg.UnitsPerCell < 1 {
		return fmt.Errorf("units_per_cell must be >= 1")
	}
	if cfg.Pane.OpenWidth < 1 {
		return fmt.Errorf("pane.open_width must be >= 1")
	}
	if cfg.Pane.CompactWidth < 1 || cfg.Pane.CompactWidth > cfg.Pane.OpenWidth {
		return fmt.Errorf("pane.compact_width must be between 1 and pane.open_width")
	}

	if cfg.Animation.PaneMS < 0 || cfg.Animation.OverlayMS < 0 {
		return fmt.Errorf("animation durations must be >= 0")
	}
	if _, err := theme.ParseCurve(cfg.Animation.Curve); err != nil {
		return fmt.Errorf("animation.curve: %w", err)
	}

	if _, err := ParseClip(cfg.Clip); err != nil {
		return err
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", cfg.LogLevel)
	}

	return nil
}

// ParseClip maps the clip setting to the navigation view's clip behavior.
func ParseClip(s string) (navview.Clip, error) {
	switch s {
	case "", "hard_edge":
		return navview.ClipHardEdge, nil
	case "none":
		return navview.ClipNone, nil
	}
	return navview.ClipHardEdge, fmt.Errorf("clip %q must be none or hard_edge", s)
}

// Mode returns the configured display mode. Load has already validated it.
func (c Config) Mode() navview.DisplayMode {
	m, _ := navview.ParseDisplayMode(c.DisplayMode)
	return m
}

// Theme returns the default theme with the configured animation timings.
func (c Config) Theme() *theme.Theme {
	th := theme.Default()
	th.Animation.Pane = time.Duration(c.Animation.PaneMS) * time.Millisecond
	th.Animation.Overlay = time.Duration(c.Animation.OverlayMS) * time.Millisecond
	if curve, err := theme.ParseCurve(c.Animation.Curve); err == nil {
		th.Animation.Curve = curve
	}
	return th
}
