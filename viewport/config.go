package viewport

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"flowcanvas/geom"
	"flowcanvas/host"
)

// DefaultMinZoom is the lower zoom bound used when none is configured. Zoom
// must stay strictly positive for the anchor math, so "unbounded" below
// means this tiny value rather than 0.
const DefaultMinZoom = 1e-6

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("viewport: invalid config")

// ConfigError lists every problem found in a Config.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "viewport: invalid config: " + strings.Join(e.Problems, "; ")
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Bounds limits translation and zoom. The stored transform never leaves them.
type Bounds struct {
	MinX, MaxX       float64
	MinY, MaxY       float64
	MinZoom, MaxZoom float64
}

// Unbounded returns bounds with no translation limits and zoom limited only
// to stay positive.
func Unbounded() Bounds {
	return Bounds{
		MinX:    math.Inf(-1),
		MaxX:    math.Inf(1),
		MinY:    math.Inf(-1),
		MaxY:    math.Inf(1),
		MinZoom: DefaultMinZoom,
		MaxZoom: math.Inf(1),
	}
}

// Config is the interaction policy of an Engine. Start from DefaultConfig
// and override fields; the zero value is not valid.
type Config struct {
	EnablePan  bool
	EnableZoom bool
	// RequireCtrlToZoom makes plain wheel events scroll-pan; only wheel
	// events for which ZoomModifier returns true zoom.
	RequireCtrlToZoom bool
	// ZoomModifier decides whether the modifiers of a wheel event count as
	// the zoom modifier. Nil means Ctrl.
	ZoomModifier func(host.Modifiers) bool
	// PanOnDrag exposes the pointer handler bundle from Handlers.
	PanOnDrag bool
	// PreventClickOnPan swallows the click that ends a drag.
	PreventClickOnPan bool

	ZoomSensitivity      float64
	ScrollPanSensitivity float64

	Bounds      Bounds
	InitialZoom float64
	InitialPan  geom.Position

	OnPanStart func(PointerSet)
	OnPan      func(PointerSet)
	OnPanEnd   func()
	OnZoom     func()

	Logger *slog.Logger
}

// DefaultConfig returns the default policy: pan and zoom enabled, wheel
// zooms without a modifier, drag pans, clicks after a pan are swallowed.
func DefaultConfig() Config {
	return Config{
		EnablePan:            true,
		EnableZoom:           true,
		PanOnDrag:            true,
		PreventClickOnPan:    true,
		ZoomSensitivity:      0.01,
		ScrollPanSensitivity: 1,
		Bounds:               Unbounded(),
		InitialZoom:          1,
	}
}

// CtrlHeld is the default zoom modifier.
func CtrlHeld(m host.Modifiers) bool { return m.Has(host.ModCtrl) }

// Validate reports configuration errors. It never mutates c.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	b := c.Bounds
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min x", b.MinX}, {"max x", b.MaxX},
		{"min y", b.MinY}, {"max y", b.MaxY},
		{"min zoom", b.MinZoom}, {"max zoom", b.MaxZoom},
	} {
		if math.IsNaN(f.v) {
			add("%s is NaN", f.name)
		}
	}
	if b.MinX > b.MaxX {
		add("min x %g exceeds max x %g", b.MinX, b.MaxX)
	}
	if b.MinY > b.MaxY {
		add("min y %g exceeds max y %g", b.MinY, b.MaxY)
	}
	if !(b.MinZoom > 0) {
		add("min zoom must be positive, got %g", b.MinZoom)
	}
	if b.MinZoom > b.MaxZoom {
		add("min zoom %g exceeds max zoom %g", b.MinZoom, b.MaxZoom)
	}
	if math.IsInf(b.MinZoom, 1) {
		add("min zoom must be finite")
	}
	if !(c.InitialZoom > 0) || math.IsInf(c.InitialZoom, 0) {
		add("initial zoom must be positive and finite, got %g", c.InitialZoom)
	}
	if math.IsNaN(c.InitialPan.X) || math.IsNaN(c.InitialPan.Y) {
		add("initial pan is NaN")
	}
	if !(c.ZoomSensitivity >= 0 && c.ZoomSensitivity < 1) {
		add("zoom sensitivity must be in [0, 1), got %g", c.ZoomSensitivity)
	}
	if !(c.ScrollPanSensitivity >= 0) {
		add("scroll pan sensitivity must not be negative, got %g", c.ScrollPanSensitivity)
	}

	if len(problems) == 0 {
		return nil
	}
	return &ConfigError{Problems: problems}
}

func noop()                   {}
func noopPointers(PointerSet) {}

// withDefaults fills nil hooks so the engine never checks them.
func (c Config) withDefaults() Config {
	if c.ZoomModifier == nil {
		c.ZoomModifier = CtrlHeld
	}
	if c.OnPanStart == nil {
		c.OnPanStart = noopPointers
	}
	if c.OnPan == nil {
		c.OnPan = noopPointers
	}
	if c.OnPanEnd == nil {
		c.OnPanEnd = noop
	}
	if c.OnZoom == nil {
		c.OnZoom = noop
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
