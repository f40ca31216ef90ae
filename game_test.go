package main

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/canvas"
	"flowcanvas/config"
	"flowcanvas/geom"
	"flowcanvas/graph"
	"flowcanvas/host"
	"flowcanvas/viewport"
)

func newTestGame(t *testing.T, mutate func(*GameOptions)) *Game {
	t.Helper()
	opts := GameOptions{Config: config.Defaults()}
	if mutate != nil {
		mutate(&opts)
	}
	g, err := NewGame(opts)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

// screenOf returns the window point over the middle of node id.
func screenOf(t *testing.T, g *Game, id string) geom.Position {
	t.Helper()
	n, ok := g.graph.Node(id)
	require.True(t, ok, id)
	return g.engine.Transform().ToScreen(n.Rect().Center())
}

func graphNode(id string) graph.Node {
	return graph.Node{ID: id, Label: id, Width: 10, Height: 10}
}

func click(g *Game, p geom.Position) {
	g.surface.Dispatch(host.NewMouseEvent(host.EventClick, p.X, p.Y))
}

func TestNewGameFitsDemoGraph(t *testing.T) {
	g := newTestGame(t, nil)
	view := canvas.VisibleWorld(g.engine.Transform(), 1280, 800)
	b := g.graph.Bounds()

	assert.LessOrEqual(t, view.X, b.X)
	assert.LessOrEqual(t, view.Y, b.Y)
	assert.GreaterOrEqual(t, view.X+view.Width, b.X+b.Width)
	assert.GreaterOrEqual(t, view.Y+view.Height, b.Y+b.Height)
}

func TestClickTogglesSelection(t *testing.T) {
	g := newTestGame(t, nil)

	p := screenOf(t, g, "clean")
	click(g, p)
	assert.Equal(t, "clean", g.selected)

	click(g, p)
	assert.Empty(t, g.selected)

	click(g, p)
	click(g, geom.Position{X: 1, Y: 1})
	assert.Empty(t, g.selected, "clicking empty canvas clears the selection")
}

func TestClickAfterPanDoesNotSelect(t *testing.T) {
	g := newTestGame(t, nil)

	g.surface.Dispatch(host.NewMouseEvent(host.EventMouseDown, 5, 5))
	g.surface.Dispatch(host.NewMouseEvent(host.EventMouseMove, 25, 5))
	g.surface.Dispatch(host.NewMouseEvent(host.EventMouseUp, 25, 5))

	p := screenOf(t, g, "input")
	click(g, p)
	assert.Empty(t, g.selected, "the click ending a pan is swallowed")

	click(g, p)
	assert.Equal(t, "input", g.selected)
}

func TestLayoutRefreshesCenter(t *testing.T) {
	g := newTestGame(t, nil)
	g.engine.SetTransform(viewport.Transform{X: 0, Y: 0, Zoom: 2})

	w, h := g.Layout(400, 300)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, viewport.Center{Top: 75, Left: 100}, g.engine.Center())

	bs := g.ui.Buttons()
	require.NotEmpty(t, bs)
	assert.Equal(t, float32(360), bs[0].X)
}

func TestUIButtonsDriveEngine(t *testing.T) {
	g := newTestGame(t, nil)
	g.engine.SetTransform(viewport.Transform{Zoom: 1})

	bs := g.ui.Buttons()
	require.Len(t, bs, 4)
	bs[0].OnClick()
	assert.InDelta(t, ZoomStep, g.engine.Zoom(), 1e-9)
	bs[1].OnClick()
	assert.InDelta(t, 1.0, g.engine.Zoom(), 1e-9)

	bs[3].OnClick()
	assert.Equal(t, viewport.Transform{Zoom: 1}, g.engine.Transform())
}

func TestReloadAppliesNewBounds(t *testing.T) {
	g := newTestGame(t, nil)
	g.engine.SetTransform(viewport.Transform{X: 500, Y: -500, Zoom: 1})

	cfg := config.Defaults()
	cfg.Viewport.Bounds.MaxX = 100
	cfg.Viewport.Bounds.MinY = -100
	g.Reload(config.Defaults())
	g.Reload(cfg) // replaces the pending one
	g.applyPendingReload()

	assert.Equal(t, viewport.Transform{X: 100, Y: -100, Zoom: 1}, g.engine.Transform())
	assert.Equal(t, 100.0, g.cfg.Viewport.Bounds.MaxX)

	// the new engine is the one receiving events
	g.surface.Dispatch(host.NewWheelEvent(10, 10, 0, 0, 0))
	assert.Equal(t, 1, g.surface.ListenerCount(host.EventWheel))
}

func TestReloadRejectsInvalidConfig(t *testing.T) {
	g := newTestGame(t, nil)
	before := g.engine

	cfg := config.Defaults()
	cfg.Viewport.Bounds.MinZoom = 0
	g.applyConfig(cfg)

	assert.Same(t, before, g.engine)
	assert.Contains(t, g.ui.Debug.Error, "min zoom")
}

func TestRestoreViewState(t *testing.T) {
	state := &ViewState{
		Version:   viewStateVersion,
		Transform: TransformState{X: 7, Y: 8, Zoom: 2},
		Selected:  "n1",
	}
	state.Graph.Nodes = append(state.Graph.Nodes, graphNode("n1"))

	g := newTestGame(t, func(o *GameOptions) { o.State = state })
	assert.Equal(t, viewport.Transform{X: 7, Y: 8, Zoom: 2}, g.engine.Transform())
	assert.Equal(t, "n1", g.selected)

	tr, gr, sel := g.View()
	assert.Equal(t, g.engine.Transform(), tr)
	assert.Len(t, gr.Nodes, 1)
	assert.Equal(t, "n1", sel)
}

func TestCloseReleasesEngineListeners(t *testing.T) {
	g := newTestGame(t, nil)
	require.Equal(t, 1, g.surface.ListenerCount(host.EventWheel))
	require.Equal(t, 1, g.surface.ListenerCount(host.EventMouseDown))

	g.Close()
	assert.Zero(t, g.surface.ListenerCount(host.EventWheel))
	assert.Zero(t, g.surface.ListenerCount(host.EventMouseDown))
	assert.Zero(t, g.surface.ListenerCount(host.EventGestureChange))
	// the game's own selection listener stays
	assert.Equal(t, 1, g.surface.ListenerCount(host.EventClick))
}

func TestBackgroundErrorsReachDebugPanel(t *testing.T) {
	g := newTestGame(t, nil)

	g.ReportError(errors.New("config.yaml: bad indent"))
	assert.Empty(t, g.ui.Debug.Error, "nothing is shown before the next frame")
	g.applyPendingReload()
	assert.Equal(t, "config.yaml: bad indent", g.ui.Debug.Error)

	g.Reload(config.Defaults())
	g.applyPendingReload()
	assert.Empty(t, g.ui.Debug.Error, "a good reload clears the error")
}

func TestReloadFromWatcherGoroutine(t *testing.T) {
	g := newTestGame(t, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			g.ReportError(errors.New("broken"))
			g.Reload(config.Defaults())
		}
		g.ReportError(errors.New("last"))
	}()
	for i := 0; i < 50; i++ {
		g.applyPendingReload()
		_ = g.ui.Debug.Error
		_ = g.engine.Transform()
	}
	wg.Wait()
	g.applyPendingReload()

	assert.Equal(t, "last", g.ui.Debug.Error)
}
