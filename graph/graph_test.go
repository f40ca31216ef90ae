package graph

import (
	"testing"

	"flowcanvas/geom"
)

func sample() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "c", Label: "Output", Width: 100, Height: 40},
			{ID: "a", Label: "Input", Width: 120, Height: 40},
			{ID: "b", Label: "Transform", Width: 80, Height: 60},
			{ID: "d", Label: "Side", Width: 50, Height: 50},
		},
		Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "a", To: "c"}},
	}
}

func TestTopologicalSort(t *testing.T) {
	g := sample()
	order, err := TopologicalSort(g.Nodes, g.Edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := map[string]int{}
	for i, id := range order {
		pos[id] = i
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 ids, got %v", order)
	}
	for _, e := range g.Edges {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("edge %s->%s out of order in %v", e.From, e.To, order)
		}
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	edges := []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}}
	if _, err := TopologicalSort(nodes, edges); err == nil {
		t.Error("expected cycle error")
	}
}

func TestTopologicalSortUnknownNode(t *testing.T) {
	if _, err := TopologicalSort([]Node{{ID: "a"}}, []Edge{{From: "a", To: "zz"}}); err == nil {
		t.Error("expected error for dangling edge")
	}
}

func TestLayered(t *testing.T) {
	g := sample()
	if err := Layered(g, 40, 20); err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	a, _ := g.Node("a")
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	d, _ := g.Node("d")

	if a.X != 0 || d.X != 0 {
		t.Errorf("roots should sit in column 0, got a=%v d=%v", a.X, d.X)
	}
	// column 0 is as wide as its widest node (a: 120)
	if b.X != 160 {
		t.Errorf("b.X = %v, want 160", b.X)
	}
	if c.X != 160+80+40 {
		t.Errorf("c.X = %v, want 280", c.X)
	}
	if a.Y == d.Y {
		t.Error("nodes in one column must not overlap")
	}
}

func TestBoundsAndNodeAt(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
		{ID: "b", X: 5, Y: 5, Width: 20, Height: 10},
	}}

	want := geom.Rect{X: 0, Y: 0, Width: 25, Height: 15}
	if got := g.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}

	n, ok := g.NodeAt(geom.Position{X: 7, Y: 7})
	if !ok || n.ID != "b" {
		t.Errorf("NodeAt should return the topmost node b, got %+v %v", n, ok)
	}
	if _, ok := g.NodeAt(geom.Position{X: 100, Y: 100}); ok {
		t.Error("expected no node at (100, 100)")
	}
}
