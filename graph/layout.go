package graph

// Layered places nodes in columns by their longest path from a root: column
// k holds the nodes k edges deep. Node sizes are kept; positions are
// overwritten.
func Layered(g *Graph, colGap, rowGap float64) error {
	order, err := TopologicalSort(g.Nodes, g.Edges)
	if err != nil {
		return err
	}

	depth := make(map[string]int, len(order))
	incoming := make(map[string][]string)
	for _, e := range g.Edges {
		incoming[e.To] = append(incoming[e.To], e.From)
	}
	for _, id := range order {
		for _, from := range incoming[id] {
			if d := depth[from] + 1; d > depth[id] {
				depth[id] = d
			}
		}
	}

	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}

	colX := map[int]float64{}
	rowY := map[int]float64{}
	maxDepth := 0
	for _, id := range order {
		if depth[id] > maxDepth {
			maxDepth = depth[id]
		}
	}
	// column x positions follow the widest node of the previous column
	widest := make([]float64, maxDepth+1)
	for _, id := range order {
		n := g.Nodes[index[id]]
		if n.Width > widest[depth[id]] {
			widest[depth[id]] = n.Width
		}
	}
	x := 0.0
	for d := 0; d <= maxDepth; d++ {
		colX[d] = x
		x += widest[d] + colGap
	}

	for _, id := range order {
		d := depth[id]
		n := &g.Nodes[index[id]]
		n.X = colX[d]
		n.Y = rowY[d]
		rowY[d] += n.Height + rowGap
	}
	return nil
}
