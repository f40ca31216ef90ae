package viewport

import (
	"math"

	"flowcanvas/geom"
)

// SetZoom sets the zoom to z, keeping the world point under anchor fixed on
// screen. A nil anchor means the middle of the host element.
func (e *Engine) SetZoom(z float64, anchor *geom.Position) Transform {
	return e.UpdateZoom(func(float64) float64 { return z }, anchor)
}

// ZoomBy multiplies the zoom by factor around anchor.
func (e *Engine) ZoomBy(factor float64, anchor *geom.Position) Transform {
	return e.UpdateZoom(func(z float64) float64 { return z * factor }, anchor)
}

// UpdateZoom sets the zoom to clamp(f(current)) around anchor. The new
// translation solves
//
//	x' = x + (anchor.x - x) * (zoom - zoom') / zoom
//
// and likewise for y, then is clamped. A NaN or infinite zoom leaves the
// transform unchanged.
func (e *Engine) UpdateZoom(f func(float64) float64, anchor *geom.Position) Transform {
	a := e.viewCenter()
	if anchor != nil {
		a = *anchor
	}
	return e.store.Update(func(t Transform) Transform {
		z := f(t.Zoom)
		if !finite(z) {
			return t
		}
		newZoom := e.clampZoom(z)
		ratio := (t.Zoom - newZoom) / t.Zoom
		return Transform{
			X:    e.clampX(finiteOr(t.X+(a.X-t.X)*ratio, t.X)),
			Y:    e.clampY(finiteOr(t.Y+(a.Y-t.Y)*ratio, t.Y)),
			Zoom: newZoom,
		}
	})
}

// FitBounds zooms and pans so that r, in world coordinates, fills the host
// element with padding screen pixels on each side. An empty rectangle or a
// zero-sized host only centers r.
func (e *Engine) FitBounds(r geom.Rect, padding float64) Transform {
	w, h := e.containerSize()
	zoom := e.Zoom()
	if !r.Empty() && w > 0 && h > 0 {
		sx := (w - 2*padding) / r.Width
		sy := (h - 2*padding) / r.Height
		zoom = math.Min(sx, sy)
		if !(zoom > 0) {
			zoom = 1
		}
	}
	zoom = e.clampZoom(zoom)
	c := r.Center()
	return e.SetTransform(Transform{
		X:    w/2 - c.X*zoom,
		Y:    h/2 - c.Y*zoom,
		Zoom: zoom,
	})
}

// FocusOn centers the world point p at the given zoom.
func (e *Engine) FocusOn(p geom.Position, zoom float64) Transform {
	w, h := e.containerSize()
	zoom = e.clampZoom(zoom)
	return e.SetTransform(Transform{X: w/2 - p.X*zoom, Y: h/2 - p.Y*zoom, Zoom: zoom})
}
