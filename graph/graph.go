package graph

import (
	"fmt"
	"sort"

	"flowcanvas/geom"
)

// Node is a rectangular graph element in world coordinates.
type Node struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect returns the node's world rectangle.
func (n Node) Rect() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Graph is the element list drawn by the canvas.
type Graph struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeAt returns the topmost node containing the world point p.
func (g *Graph) NodeAt(p geom.Position) (Node, bool) {
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		if g.Nodes[i].Rect().Contains(p) {
			return g.Nodes[i], true
		}
	}
	return Node{}, false
}

// Bounds returns the rectangle covering every node.
func (g *Graph) Bounds() geom.Rect {
	var r geom.Rect
	for _, n := range g.Nodes {
		r = r.Union(n.Rect())
	}
	return r
}

// TopologicalSort orders node IDs with Kahn's algorithm so every edge points
// forward. Ties are broken by ID for a stable result. A cycle is an error.
func TopologicalSort(nodes []Node, edges []Edge) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	outs := make(map[string][]string)
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}

	for _, e := range edges {
		if _, ok := inDegree[e.From]; !ok {
			return nil, fmt.Errorf("edge %s->%s: unknown node %q", e.From, e.To, e.From)
		}
		if _, ok := inDegree[e.To]; !ok {
			return nil, fmt.Errorf("edge %s->%s: unknown node %q", e.From, e.To, e.To)
		}
		outs[e.From] = append(outs[e.From], e.To)
		inDegree[e.To]++
	}

	queue := []string{}
	for id, d := range inDegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		result = append(result, u)

		next := outs[u]
		sort.Strings(next)
		for _, v := range next {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(result) != len(inDegree) {
		return nil, fmt.Errorf("cycle detected in graph")
	}
	return result, nil
}
