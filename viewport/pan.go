package viewport

import (
	"log/slog"
	"slices"

	"flowcanvas/geom"
)

// StartPan begins a pan gesture with pointers as the baseline. It is a no-op
// when panning is disabled.
func (e *Engine) StartPan(pointers PointerSet) {
	if !e.cfg.EnablePan {
		return
	}
	e.prev = slices.Clone(pointers)
	e.panning.Set(true)
	e.log.Debug("pan start", slog.Int("pointers", len(pointers)))
	e.cfg.OnPanStart(pointers)
}

// MovePan translates by the mean per-pointer motion since the last call.
// Only the index range shared by both pointer sets takes part. Outside a
// gesture it does nothing.
func (e *Engine) MovePan(pointers PointerSet) {
	if !e.panning.Get() {
		return
	}
	e.wasPanning = true

	prev := e.prev
	e.prev = slices.Clone(pointers)

	if n := min(len(pointers), len(prev)); n > 0 {
		var dx, dy float64
		for i := 0; i < n; i++ {
			dx += pointers[i].X - prev[i].X
			dy += pointers[i].Y - prev[i].Y
		}
		e.PanBy(dx/float64(n), dy/float64(n))
	}

	e.cfg.OnPan(pointers)
}

// EndPan finishes the current pan gesture. Calling it again, or without a
// gesture, does nothing.
func (e *Engine) EndPan() {
	if !e.panning.Get() {
		return
	}
	e.panning.Set(false)
	e.prev = nil
	e.log.Debug("pan end", slog.Float64("x", e.Pan().X), slog.Float64("y", e.Pan().Y))
	e.cfg.OnPanEnd()
}

// SetPan moves the translation to p, clamped. Zoom is unchanged.
func (e *Engine) SetPan(p geom.Position) Transform {
	return e.UpdatePan(func(geom.Position) geom.Position { return p })
}

// UpdatePan replaces the translation with f(current), clamped. A NaN or
// infinite coordinate keeps its current value.
func (e *Engine) UpdatePan(f func(geom.Position) geom.Position) Transform {
	return e.store.Update(func(t Transform) Transform {
		p := f(t.Pan())
		return Transform{
			X:    e.clampX(finiteOr(p.X, t.X)),
			Y:    e.clampY(finiteOr(p.Y, t.Y)),
			Zoom: t.Zoom,
		}
	})
}

// PanBy translates by (dx, dy) screen pixels.
func (e *Engine) PanBy(dx, dy float64) Transform {
	return e.UpdatePan(func(p geom.Position) geom.Position {
		return geom.Position{X: p.X + dx, Y: p.Y + dy}
	})
}
