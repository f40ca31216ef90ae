package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"flowcanvas/graph"
	"flowcanvas/viewport"
)

const viewStateVersion = 1

//go:embed viewstate.schema.json
var viewStateSchema []byte

type TransformState struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

// ViewState is what the run command persists between sessions.
type ViewState struct {
	Version   int            `yaml:"version"`
	Transform TransformState `yaml:"transform"`
	Selected  string         `yaml:"selected,omitempty"`
	Graph     graph.Graph    `yaml:"graph"`
}

func (s ViewState) ViewportTransform() viewport.Transform {
	return viewport.Transform{X: s.Transform.X, Y: s.Transform.Y, Zoom: s.Transform.Zoom}
}

// SchemaError lists the schema violations of a view state file.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "view state does not match schema: " + strings.Join(e.Problems, "; ")
}

func SaveViewState(filename string, t viewport.Transform, g *graph.Graph, selected string) error {
	state := ViewState{
		Version:   viewStateVersion,
		Transform: TransformState{X: t.X, Y: t.Y, Zoom: t.Zoom},
		Selected:  selected,
	}
	if g != nil {
		state.Graph = *g
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return err
	}
	return enc.Close()
}

// LoadViewState reads and validates a view state file. Nodes saved without
// an ID get a fresh one, and edges to unknown nodes are dropped.
func LoadViewState(filename string) (ViewState, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return ViewState{}, err
	}
	if err := validateViewState(data); err != nil {
		return ViewState{}, fmt.Errorf("%s: %w", filename, err)
	}

	var state ViewState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return ViewState{}, fmt.Errorf("%s: %w", filename, err)
	}

	known := make(map[string]bool, len(state.Graph.Nodes))
	for i := range state.Graph.Nodes {
		n := &state.Graph.Nodes[i]
		if n.ID == "" {
			n.ID = newID()
		}
		known[n.ID] = true
	}
	edges := state.Graph.Edges[:0]
	for _, e := range state.Graph.Edges {
		if known[e.From] && known[e.To] {
			edges = append(edges, e)
		}
	}
	state.Graph.Edges = edges
	if !known[state.Selected] {
		state.Selected = ""
	}
	return state, nil
}

// validateViewState checks YAML data against the embedded JSON schema.
func validateViewState(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return errors.New("empty view state")
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(viewStateSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, e := range result.Errors() {
		se.Problems = append(se.Problems, e.String())
	}
	return se
}

func newID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "error-id"
	}
	return hex.EncodeToString(b)
}
