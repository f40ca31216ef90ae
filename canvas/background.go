package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"flowcanvas/geom"
	"flowcanvas/viewport"
)

// VisibleWorld returns the world rectangle covered by a screen of the given
// size under t.
func VisibleWorld(t viewport.Transform, screenWidth, screenHeight float64) geom.Rect {
	tl := t.ToWorld(geom.Position{})
	br := t.ToWorld(geom.Position{X: screenWidth, Y: screenHeight})
	return geom.Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}

// gridLines returns the world coordinates of the grid lines inside [lo, hi).
// The step grows by powers of two while lines would be closer than minGap
// screen pixels, so zoomed-out views stay readable.
func gridLines(lo, hi, step, zoom, minGap float64) []float64 {
	if step <= 0 || zoom <= 0 || hi <= lo {
		return nil
	}
	for step*zoom < minGap {
		step *= 2
	}
	var out []float64
	for w := math.Floor(lo/step) * step; w < hi; w += step {
		out = append(out, w)
	}
	return out
}

// Grid configures DrawBackgroundGrid.
type Grid struct {
	Step        float64
	MinGap      float64
	Line        color.Color
	OriginCross color.Color
}

// DrawBackgroundGrid renders the infinite grid and the origin marker.
func DrawBackgroundGrid(screen *ebiten.Image, t viewport.Transform, g Grid) {
	b := screen.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	view := VisibleWorld(t, sw, sh)

	for _, wx := range gridLines(view.X, view.X+view.Width, g.Step, t.Zoom, g.MinGap) {
		sx := t.ToScreen(geom.Position{X: wx}).X
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(sh), 1, g.Line, false)
	}
	for _, wy := range gridLines(view.Y, view.Y+view.Height, g.Step, t.Zoom, g.MinGap) {
		sy := t.ToScreen(geom.Position{Y: wy}).Y
		vector.StrokeLine(screen, 0, float32(sy), float32(sw), float32(sy), 1, g.Line, false)
	}

	o := t.ToScreen(geom.Position{})
	ox, oy := float32(o.X), float32(o.Y)
	vector.StrokeLine(screen, ox-15, oy, ox+15, oy, 2, g.OriginCross, false)
	vector.StrokeLine(screen, ox, oy-15, ox, oy+15, 2, g.OriginCross, false)
}
