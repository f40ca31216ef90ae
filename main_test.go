package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/viewport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScriptCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "view.star")
	require.NoError(t, os.WriteFile(script, []byte(`
set_pan(10, 20)
zoom(2, x = 0, y = 0)
size = [width, height]
`), 0o644))

	out, err := execute(t, "--config", filepath.Join(dir, "none.yaml"),
		"script", script, "--width", "400", "--height", "300")
	require.NoError(t, err)

	assert.Contains(t, out, "transform: x=20 y=40 zoom=2")
	assert.Contains(t, out, "style: translate(20px, 40px) scale(2)")
	assert.Contains(t, out, "size = [400 300]")
}

func TestScriptCommandUsesStateGraph(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")
	require.NoError(t, os.WriteFile(state, []byte(`
version: 1
transform: {x: 0, y: 0, zoom: 1}
graph:
  nodes:
    - {id: a, x: 0, y: 0, width: 100, height: 100}
`), 0o644))
	script := filepath.Join(dir, "fit.star")
	require.NoError(t, os.WriteFile(script, []byte("fit()\n"), 0o644))

	out, err := execute(t, "--config", filepath.Join(dir, "none.yaml"),
		"script", script, "--state", state, "--width", "400", "--height", "200")
	require.NoError(t, err)
	// zoom = min(400/100, 200/100) = 2, centered
	assert.Contains(t, out, "transform: x=100 y=0 zoom=2")
}

func TestScriptCommandReportsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.star")
	require.NoError(t, os.WriteFile(script, []byte(`zoom("big")`), 0o644))

	_, err := execute(t, "--config", filepath.Join(dir, "none.yaml"), "script", script)
	assert.ErrorContains(t, err, "must be a number")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, SaveViewState(good, viewport.Transform{Zoom: 1}, nil, ""))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 1\ntransform: {x: 0, y: 0, zoom: -1}\n"), 0o644))

	out, err := execute(t, "--config", filepath.Join(dir, "none.yaml"), "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "good.yaml: ok")
	assert.Contains(t, out, "bad.yaml:")

	_, err = execute(t, "--config", filepath.Join(dir, "none.yaml"), "check", good)
	assert.NoError(t, err)
}

func TestCheckCommandRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("viewport:\n  bounds:\n    min_zoom: 0\n"), 0o644))

	_, err := execute(t, "--config", cfg, "check")
	assert.ErrorIs(t, err, viewport.ErrInvalidConfig)
}
