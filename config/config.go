// Package config loads the user-editable YAML configuration.
//
// The file is optional: missing keys keep their defaults, and environment
// variables override the file at runtime without being written back.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"flowcanvas/geom"
	"flowcanvas/host"
	"flowcanvas/internal/log"
	"flowcanvas/viewport"
)

// CurrentVersion is written to new files. Bump it when the layout changes
// incompatibly.
const CurrentVersion = 1

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type BoundsConfig struct {
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	MinY    float64 `yaml:"min_y"`
	MaxY    float64 `yaml:"max_y"`
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ViewportConfig mirrors viewport.Config in a serializable form. Infinite
// bounds are written as .inf and -.inf.
type ViewportConfig struct {
	EnablePan         bool `yaml:"enable_pan"`
	EnableZoom        bool `yaml:"enable_zoom"`
	RequireCtrlToZoom bool `yaml:"require_ctrl_to_zoom"`
	// ZoomModifier is one of ctrl, meta, alt, shift or ctrl_or_meta.
	ZoomModifier      string `yaml:"zoom_modifier"`
	PanOnDrag         bool   `yaml:"pan_on_drag"`
	PreventClickOnPan bool   `yaml:"prevent_click_on_pan"`

	ZoomSensitivity      float64 `yaml:"zoom_sensitivity"`
	ScrollPanSensitivity float64 `yaml:"scroll_pan_sensitivity"`

	Bounds      BoundsConfig `yaml:"bounds"`
	InitialZoom float64      `yaml:"initial_zoom"`
	InitialPan  PointConfig  `yaml:"initial_pan"`
}

type InputConfig struct {
	// WheelLineHeight is the scroll delta in pixels of one wheel notch.
	WheelLineHeight float64 `yaml:"wheel_line_height"`
	// FitPadding is the screen margin kept by the fit button.
	FitPadding float64 `yaml:"fit_padding"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	Window        WindowConfig   `yaml:"window"`
	Viewport      ViewportConfig `yaml:"viewport"`
	Input         InputConfig    `yaml:"input"`
	Logging       log.Options    `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	vc := viewport.DefaultConfig()
	b := vc.Bounds
	return AppConfig{
		ConfigVersion: CurrentVersion,
		Window:        WindowConfig{Title: "flowcanvas", Width: 1280, Height: 800},
		Viewport: ViewportConfig{
			EnablePan:            vc.EnablePan,
			EnableZoom:           vc.EnableZoom,
			RequireCtrlToZoom:    vc.RequireCtrlToZoom,
			ZoomModifier:         "ctrl",
			PanOnDrag:            vc.PanOnDrag,
			PreventClickOnPan:    vc.PreventClickOnPan,
			ZoomSensitivity:      vc.ZoomSensitivity,
			ScrollPanSensitivity: vc.ScrollPanSensitivity,
			Bounds: BoundsConfig{
				MinX: b.MinX, MaxX: b.MaxX,
				MinY: b.MinY, MaxY: b.MaxY,
				MinZoom: 0.1, MaxZoom: 10,
			},
			InitialZoom: vc.InitialZoom,
		},
		Input:   InputConfig{WheelLineHeight: 20, FitPadding: 40},
		Logging: log.Options{Level: "info", Format: "console"},
	}
}

var zoomModifiers = map[string]func(host.Modifiers) bool{
	"ctrl":  viewport.CtrlHeld,
	"meta":  func(m host.Modifiers) bool { return m.Has(host.ModMeta) },
	"alt":   func(m host.Modifiers) bool { return m.Has(host.ModAlt) },
	"shift": func(m host.Modifiers) bool { return m.Has(host.ModShift) },
	"ctrl_or_meta": func(m host.Modifiers) bool {
		return m.Has(host.ModCtrl) || m.Has(host.ModMeta)
	},
}

// ToViewport converts c into an engine config. Hooks and the logger are left
// for the caller to set.
func (c ViewportConfig) ToViewport() (viewport.Config, error) {
	mod, ok := zoomModifiers[strings.ToLower(strings.TrimSpace(c.ZoomModifier))]
	if c.ZoomModifier == "" {
		mod, ok = viewport.CtrlHeld, true
	}
	if !ok {
		return viewport.Config{}, fmt.Errorf("unknown zoom modifier %q", c.ZoomModifier)
	}
	vc := viewport.Config{
		EnablePan:            c.EnablePan,
		EnableZoom:           c.EnableZoom,
		RequireCtrlToZoom:    c.RequireCtrlToZoom,
		ZoomModifier:         mod,
		PanOnDrag:            c.PanOnDrag,
		PreventClickOnPan:    c.PreventClickOnPan,
		ZoomSensitivity:      c.ZoomSensitivity,
		ScrollPanSensitivity: c.ScrollPanSensitivity,
		Bounds: viewport.Bounds{
			MinX: c.Bounds.MinX, MaxX: c.Bounds.MaxX,
			MinY: c.Bounds.MinY, MaxY: c.Bounds.MaxY,
			MinZoom: c.Bounds.MinZoom, MaxZoom: c.Bounds.MaxZoom,
		},
		InitialZoom: c.InitialZoom,
		InitialPan:  geom.Position{X: c.InitialPan.X, Y: c.InitialPan.Y},
	}
	return vc, vc.Validate()
}

// Validate checks the whole file. Viewport problems unwrap to
// viewport.ErrInvalidConfig.
func (c AppConfig) Validate() error {
	var errs []error
	if c.ConfigVersion > CurrentVersion {
		errs = append(errs, fmt.Errorf("config_version %d is newer than supported %d", c.ConfigVersion, CurrentVersion))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !(c.Input.WheelLineHeight > 0) {
		errs = append(errs, fmt.Errorf("wheel_line_height must be positive"))
	}
	if c.Input.FitPadding < 0 {
		errs = append(errs, fmt.Errorf("fit_padding must not be negative"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	if _, err := c.Viewport.ToViewport(); err != nil {
		errs = append(errs, fmt.Errorf("viewport: %w", err))
	}
	return errors.Join(errs...)
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "flowcanvas", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are not applied; see ApplyEnv.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	// Unmarshal only overwrites keys present in the file.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Env var names used as overrides. Logging uses the FLOWCANVAS_LOG_*
// variables read by the log package.
const (
	EnvWindowWidth       = "FLOWCANVAS_WINDOW_WIDTH"
	EnvWindowHeight      = "FLOWCANVAS_WINDOW_HEIGHT"
	EnvZoomSensitivity   = "FLOWCANVAS_ZOOM_SENSITIVITY"
	EnvRequireCtrlToZoom = "FLOWCANVAS_REQUIRE_CTRL_TO_ZOOM"
	EnvZoomModifier      = "FLOWCANVAS_ZOOM_MODIFIER"
)

// ApplyEnv overlays environment overrides on cfg. Unparsable values are
// ignored.
func ApplyEnv(cfg *AppConfig) {
	if v, ok := envInt(EnvWindowWidth); ok {
		cfg.Window.Width = v
	}
	if v, ok := envInt(EnvWindowHeight); ok {
		cfg.Window.Height = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvZoomSensitivity)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Viewport.ZoomSensitivity = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRequireCtrlToZoom)); v != "" {
		cfg.Viewport.RequireCtrlToZoom = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvZoomModifier)); v != "" {
		cfg.Viewport.ZoomModifier = v
	}
	cfg.Logging = log.FromEnv(cfg.Logging)
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
