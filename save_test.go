package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/graph"
	"flowcanvas/viewport"
)

func TestSaveLoadViewState(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "state.yaml")

	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Label: "A", X: 0, Y: 0, Width: 100, Height: 50},
			{ID: "b", Label: "B", X: 200, Y: 0, Width: 100, Height: 50},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
	tr := viewport.Transform{X: 12.5, Y: -4, Zoom: 1.5}

	if err := SaveViewState(filename, tr, g, "b"); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	state, err := LoadViewState(filename)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	assert.Equal(t, viewStateVersion, state.Version)
	assert.Equal(t, tr, state.ViewportTransform())
	assert.Equal(t, "b", state.Selected)
	assert.Equal(t, *g, state.Graph)
}

func TestLoadViewStateRepairsGraph(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
version: 1
transform: {x: 0, y: 0, zoom: 1}
selected: ghost
graph:
  nodes:
    - {id: a, x: 0, y: 0, width: 10, height: 10}
    - {x: 50, y: 0, width: 10, height: 10}
  edges:
    - {from: a, to: ghost}
`), 0o644))

	state, err := LoadViewState(filename)
	require.NoError(t, err)
	require.Len(t, state.Graph.Nodes, 2)
	assert.Len(t, state.Graph.Nodes[1].ID, 16, "missing IDs are generated")
	assert.Empty(t, state.Graph.Edges, "edges to unknown nodes are dropped")
	assert.Empty(t, state.Selected)
}

func TestLoadViewStateSchemaErrors(t *testing.T) {
	cases := map[string]string{
		"zero zoom":         "version: 1\ntransform: {x: 0, y: 0, zoom: 0}\n",
		"missing transform": "version: 1\n",
		"string x":          "version: 1\ntransform: {x: left, y: 0, zoom: 1}\n",
		"negative width":    "version: 1\ntransform: {x: 0, y: 0, zoom: 1}\ngraph:\n  nodes:\n    - {x: 0, y: 0, width: -1, height: 1}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "state.yaml")
			require.NoError(t, os.WriteFile(filename, []byte(body), 0o644))

			_, err := LoadViewState(filename)
			require.Error(t, err)
			var se *SchemaError
			assert.True(t, errors.As(err, &se), "got %v", err)
		})
	}
}

func TestLoadViewStateEmptyFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(filename, nil, 0o644))
	_, err := LoadViewState(filename)
	assert.ErrorContains(t, err, "empty view state")
}
