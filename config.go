package main

import (
	"image/color"

	"flowcanvas/graph"
)

const (
	// --- Grid ---
	GridStep   = 50.0
	GridMinGap = 12.0

	// --- Nodes ---
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 70.0
	LayoutColumnGap   = 80.0
	LayoutRowGap      = 40.0

	// --- Zoom buttons ---
	ZoomStep = 1.25
)

var (
	ColorBackground   = color.RGBA{30, 30, 35, 255}
	ColorGrid         = color.RGBA{255, 255, 255, 20}
	ColorOriginCross  = color.RGBA{255, 100, 100, 150}
	ColorShadow       = color.RGBA{0, 0, 0, 100}
	ColorNode         = color.RGBA{45, 45, 50, 255}
	ColorNodeSelected = color.RGBA{0, 120, 255, 255}
	ColorEdge         = color.RGBA{200, 200, 200, 255}
	ColorLabel        = color.RGBA{220, 220, 220, 255}
)

// demoGraph is shown when no view state is loaded. Positions come from
// graph.Layered.
func demoGraph() *graph.Graph {
	node := func(id, label string) graph.Node {
		return graph.Node{ID: id, Label: label, Width: DefaultNodeWidth, Height: DefaultNodeHeight}
	}
	return &graph.Graph{
		Nodes: []graph.Node{
			node("input", "Input Data"),
			node("clean", "Clean"),
			node("split", "Split"),
			node("train", "Train"),
			node("eval", "Evaluate"),
			node("plot", "Output Plot"),
		},
		Edges: []graph.Edge{
			{From: "input", To: "clean"},
			{From: "clean", To: "split"},
			{From: "split", To: "train"},
			{From: "split", To: "eval"},
			{From: "train", To: "eval"},
			{From: "eval", To: "plot"},
		},
	}
}
