package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"flowcanvas/geom"
	"flowcanvas/graph"
	"flowcanvas/viewport"
)

// Style holds the colors used to draw a graph.
type Style struct {
	Node         color.Color
	NodeSelected color.Color
	Shadow       color.Color
	Edge         color.Color
	Label        color.Color
	Face         font.Face
}

// DrawGraph draws edges and then nodes under t. Nodes outside the screen
// are skipped.
func DrawGraph(screen *ebiten.Image, t viewport.Transform, g *graph.Graph, selected string, st Style) {
	b := screen.Bounds()
	view := VisibleWorld(t, float64(b.Dx()), float64(b.Dy()))

	for _, e := range g.Edges {
		from, ok1 := g.Node(e.From)
		to, ok2 := g.Node(e.To)
		if !ok1 || !ok2 {
			continue
		}
		drawEdge(screen, t, from, to, st.Edge)
	}

	for _, n := range g.Nodes {
		if !intersects(view, n.Rect()) {
			continue
		}
		clr := st.Node
		if n.ID == selected {
			clr = st.NodeSelected
		}
		drawNode(screen, t, n, clr, st)
	}
}

func intersects(a, b geom.Rect) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func drawNode(screen *ebiten.Image, t viewport.Transform, n graph.Node, clr color.Color, st Style) {
	p := t.ToScreen(geom.Position{X: n.X, Y: n.Y})
	sw := float32(n.Width * t.Zoom)
	sh := float32(n.Height * t.Zoom)
	shadow := float32(5 * t.Zoom)

	vector.DrawFilledRect(screen, float32(p.X)+shadow, float32(p.Y)+shadow, sw, sh, st.Shadow, false)
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), sw, sh, clr, false)

	if st.Face == nil || t.Zoom < 0.4 {
		return
	}
	ascent := st.Face.Metrics().Ascent.Ceil()
	text.Draw(screen, n.Label, st.Face, int(p.X)+8, int(p.Y)+8+ascent, st.Label)
}

func drawEdge(screen *ebiten.Image, t viewport.Transform, from, to graph.Node, clr color.Color) {
	start := t.ToScreen(geom.Position{X: from.X + from.Width, Y: from.Y + from.Height/2})
	end := t.ToScreen(geom.Position{X: to.X, Y: to.Y + to.Height/2})

	thickness := float32(2 * t.Zoom)
	if thickness < 1 {
		thickness = 1
	}
	pts := bezier(start, end, 20)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen,
			float32(pts[i-1].X), float32(pts[i-1].Y),
			float32(pts[i].X), float32(pts[i].Y),
			thickness, clr, true)
	}
}

// bezier samples a horizontal S-curve from s to e in screen space.
func bezier(s, e geom.Position, segments int) []geom.Position {
	dist := math.Max(math.Abs(e.X-s.X)*0.5, 50)
	c1 := geom.Position{X: s.X + dist, Y: s.Y}
	c2 := geom.Position{X: e.X - dist, Y: e.Y}

	pts := make([]geom.Position, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		pts = append(pts, geom.Position{
			X: u*u*u*s.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*e.X,
			Y: u*u*u*s.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*e.Y,
		})
	}
	return pts
}
