package viewport

import (
	"fmt"
	"strconv"

	"flowcanvas/geom"
)

// Transform maps world coordinates to screen coordinates:
// screen = world*Zoom + (X, Y).
type Transform struct {
	X, Y float64
	Zoom float64
}

// ToScreen converts a world point to screen space.
func (t Transform) ToScreen(world geom.Position) geom.Position {
	return geom.Position{X: world.X*t.Zoom + t.X, Y: world.Y*t.Zoom + t.Y}
}

// ToWorld converts a screen point to world space.
func (t Transform) ToWorld(screen geom.Position) geom.Position {
	return geom.Position{X: (screen.X - t.X) / t.Zoom, Y: (screen.Y - t.Y) / t.Zoom}
}

// Pan returns the translation part of the transform.
func (t Transform) Pan() geom.Position { return geom.Position{X: t.X, Y: t.Y} }

// Style serializes the transform as a CSS-style transform descriptor.
func (t Transform) Style() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", cssNumber(t.X), cssNumber(t.Y), cssNumber(t.Zoom))
}

func cssNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Center is the world-space point at the visual middle of the host element.
type Center struct {
	Top, Left float64
}

// PointerSet is the ordered list of active contact points of one gesture.
type PointerSet []geom.Position

func centerOf(t Transform, width, height float64) Center {
	return Center{
		Top:  (height/2 - t.Y) / t.Zoom,
		Left: (width/2 - t.X) / t.Zoom,
	}
}
