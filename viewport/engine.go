// Package viewport turns pointer, wheel and gesture input into a pan/zoom
// transform for a diagram canvas.
//
// An Engine owns one Transform. Drag and touch gestures translate it by the
// average motion of the active pointers, wheel and pinch gestures scale it
// around the pointer so the world point under the pointer stays put, and
// every stored value is clamped to the configured bounds.
//
// An Engine is not safe for concurrent use; drive it from the goroutine that
// delivers input events.
package viewport

import (
	"log/slog"
	"math"

	"flowcanvas/geom"
	"flowcanvas/host"
)

// Engine is the viewport transform and interaction engine.
type Engine struct {
	cfg Config
	log *slog.Logger

	clampX    func(float64) float64
	clampY    func(float64) float64
	clampZoom func(float64) float64

	store *store

	container host.Element
	unbind    func()

	panning     *Cell[bool]
	wasPanning  bool
	prev        PointerSet
	gestureZoom float64
}

// New validates cfg and returns an engine holding the initial transform,
// clamped into the bounds.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	b := cfg.Bounds

	e := &Engine{
		cfg:         cfg,
		log:         cfg.Logger.With(slog.String("component", "viewport")),
		clampX:      geom.Clamp(b.MinX, b.MaxX),
		clampY:      geom.Clamp(b.MinY, b.MaxY),
		clampZoom:   geom.Clamp(b.MinZoom, b.MaxZoom),
		panning:     NewCell(false),
		gestureZoom: 1,
	}
	e.store = newStore(e.initialTransform(), e.containerSize)
	e.log.Debug("engine created",
		slog.Float64("zoom", e.store.Get().Zoom),
		slog.Bool("pan", cfg.EnablePan),
		slog.Bool("zoom_enabled", cfg.EnableZoom))
	return e, nil
}

func (e *Engine) initialTransform() Transform {
	return Transform{
		X:    e.clampX(e.cfg.InitialPan.X),
		Y:    e.clampY(e.cfg.InitialPan.Y),
		Zoom: e.clampZoom(e.cfg.InitialZoom),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Transform returns the current transform.
func (e *Engine) Transform() Transform { return e.store.Get() }

// TransformStyle returns the current transform as a
// "translate(Xpx, Ypx) scale(Zoom)" descriptor.
func (e *Engine) TransformStyle() string { return e.store.Get().Style() }

// Center returns the world point at the middle of the host element.
func (e *Engine) Center() Center { return e.store.Center() }

// Pan returns the current translation.
func (e *Engine) Pan() geom.Position { return e.store.Get().Pan() }

// Zoom returns the current zoom factor.
func (e *Engine) Zoom() float64 { return e.store.Get().Zoom }

// Panning reports whether a pan gesture is in progress.
func (e *Engine) Panning() bool { return e.panning.Get() }

// Subscribe registers fn to run after every transform mutation. The
// returned function removes it.
func (e *Engine) Subscribe(fn func(Transform)) (unsubscribe func()) {
	return e.store.subscribe(fn)
}

// SetTransform replaces the whole transform, clamping every field. A
// non-positive zoom keeps the current zoom, and any NaN or infinite field
// keeps its current value.
func (e *Engine) SetTransform(t Transform) Transform {
	return e.store.Update(func(prev Transform) Transform {
		zoom := t.Zoom
		if !(zoom > 0) || math.IsInf(zoom, 0) {
			zoom = prev.Zoom
		}
		return Transform{
			X:    e.clampX(finiteOr(t.X, prev.X)),
			Y:    e.clampY(finiteOr(t.Y, prev.Y)),
			Zoom: e.clampZoom(zoom),
		}
	})
}

// Reset restores the initial pan and zoom.
func (e *Engine) Reset() Transform {
	return e.store.Set(e.initialTransform())
}

// Refresh recomputes the derived center. Host wiring calls it when the host
// element is resized.
func (e *Engine) Refresh() { e.store.Refresh() }

// Container returns the current host element, or nil.
func (e *Engine) Container() host.Element { return e.container }

func (e *Engine) containerSize() (float64, float64) {
	w, h := host.SizeOf(e.container)
	if math.IsNaN(w) || w < 0 {
		w = 0
	}
	if math.IsNaN(h) || h < 0 {
		h = 0
	}
	return w, h
}

// viewCenter is the screen-space middle of the host element.
func (e *Engine) viewCenter() geom.Position {
	w, h := e.containerSize()
	return geom.Position{X: w / 2, Y: h / 2}
}

// Close releases the host binding. The engine stays usable for imperative
// calls.
func (e *Engine) Close() {
	e.SetContainer(nil)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteOr returns v, or fallback when v is NaN or infinite.
func finiteOr(v, fallback float64) float64 {
	if finite(v) {
		return v
	}
	return fallback
}
