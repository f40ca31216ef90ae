package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowcanvas/geom"
	"flowcanvas/viewport"
)

func TestVisibleWorld(t *testing.T) {
	tr := viewport.Transform{X: 100, Y: 50, Zoom: 2}
	got := VisibleWorld(tr, 400, 300)
	assert.Equal(t, geom.Rect{X: -50, Y: -25, Width: 200, Height: 150}, got)
}

func TestGridLinesCoarsenWhenZoomedOut(t *testing.T) {
	lines := gridLines(0, 1000, 50, 1, 20)
	assert.Len(t, lines, 20)

	lines = gridLines(0, 1000, 50, 0.1, 20)
	// 50*0.1 = 5px is too dense; the step doubles to 200
	assert.Equal(t, []float64{0, 200, 400, 600, 800}, lines)

	assert.Nil(t, gridLines(10, 0, 50, 1, 20))
}

func TestBezierEndpoints(t *testing.T) {
	s := geom.Position{X: 0, Y: 0}
	e := geom.Position{X: 300, Y: 100}
	pts := bezier(s, e, 20)

	assert.Len(t, pts, 21)
	assert.Equal(t, s, pts[0])
	assert.InDelta(t, e.X, pts[20].X, 1e-9)
	assert.InDelta(t, e.Y, pts[20].Y, 1e-9)
}

func TestIntersects(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, intersects(a, geom.Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, intersects(a, geom.Rect{X: 20, Y: 0, Width: 5, Height: 5}))
}
