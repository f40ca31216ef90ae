package main

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"flowcanvas/canvas"
	"flowcanvas/config"
	"flowcanvas/geom"
	"flowcanvas/graph"
	"flowcanvas/host"
	"flowcanvas/input"
	"flowcanvas/ui"
	"flowcanvas/viewport"
)

type GameOptions struct {
	Config config.AppConfig
	// State restores a saved session. Nil shows the demo graph fitted to
	// the window.
	State *ViewState
	Face  font.Face
	// Log is the application logger; components tag themselves.
	Log   *slog.Logger
	Debug bool
}

type Game struct {
	cfg  config.AppConfig
	base *slog.Logger
	log  *slog.Logger

	// window is the root of the host tree; surface is the canvas element
	// the viewport engine is bound to.
	window  *host.Box
	surface *host.Box

	engine  *viewport.Engine
	release func()
	detach  func()

	poller *input.Poller
	ui     *ui.System
	face   font.Face

	graph    *graph.Graph
	selected string

	// reload carries config changes and background errors to the update
	// loop, the only goroutine that touches the engine and the UI.
	reload chan reloadMsg
}

type reloadMsg struct {
	cfg config.AppConfig
	err error
}

func NewGame(opts GameOptions) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)

	g := &Game{
		cfg:     cfg,
		base:    log,
		log:     log.With(slog.String("component", "game")),
		window:  host.NewBox("window", 0, 0, w, h),
		surface: host.NewBox("surface", 0, 0, w, h),
		face:    opts.Face,
		reload:  make(chan reloadMsg, 1),
	}
	g.window.Append(g.surface)
	g.surface.AddEventListener(host.EventClick, g.onSurfaceClick)

	if opts.State != nil {
		gr := opts.State.Graph
		g.graph = &gr
		g.selected = opts.State.Selected
	} else {
		g.graph = demoGraph()
		if err := graph.Layered(g.graph, LayoutColumnGap, LayoutRowGap); err != nil {
			return nil, fmt.Errorf("layout demo graph: %w", err)
		}
	}

	if err := g.bindEngine(cfg); err != nil {
		return nil, err
	}
	if opts.State != nil {
		g.engine.SetTransform(opts.State.ViewportTransform())
	} else {
		g.fit()
	}

	g.ui = ui.NewSystem(func() font.Face { return g.face }, ui.Actions{
		ZoomIn:  func() { g.engine.ZoomBy(ZoomStep, nil) },
		ZoomOut: func() { g.engine.ZoomBy(1/ZoomStep, nil) },
		Fit:     g.fit,
		Reset:   func() { g.engine.Reset() },
	})
	g.ui.Debug.Visible = opts.Debug
	g.ui.Layout(cfg.Window.Width)

	g.poller = input.NewPoller(&input.EbitenSource{}, g.surface, input.Options{
		WheelLineHeight: cfg.Input.WheelLineHeight,
		Ignore:          g.ui.Contains,
	})
	return g, nil
}

// bindEngine builds an engine from cfg and binds it to the surface. A
// previous engine is released and its transform carried over, clamped to the
// new bounds.
func (g *Game) bindEngine(cfg config.AppConfig) error {
	vc, err := cfg.Viewport.ToViewport()
	if err != nil {
		return fmt.Errorf("viewport config: %w", err)
	}
	vc.Logger = g.base

	e, err := viewport.New(vc)
	if err != nil {
		return err
	}
	if g.engine != nil {
		e.SetTransform(g.engine.Transform())
		g.unbind()
	}
	g.engine = e
	g.release = e.SetContainer(g.surface)
	g.detach = e.Handlers().Attach(g.surface)
	return nil
}

func (g *Game) unbind() {
	if g.detach != nil {
		g.detach()
	}
	if g.release != nil {
		g.release()
	}
	g.detach, g.release = nil, nil
}

// Close releases every listener the game registered through the engine.
func (g *Game) Close() { g.unbind() }

func (g *Game) fit() {
	g.engine.FitBounds(g.graph.Bounds(), g.cfg.Input.FitPadding)
}

// Reload queues a new config for the next frame. It may be called from any
// goroutine; if a reload or error is already pending it is replaced.
func (g *Game) Reload(cfg config.AppConfig) { g.post(reloadMsg{cfg: cfg}) }

// ReportError queues a background error, such as a failed config reload, for
// the debug panel. Like Reload it may be called from any goroutine.
func (g *Game) ReportError(err error) { g.post(reloadMsg{err: err}) }

func (g *Game) post(msg reloadMsg) {
	for {
		select {
		case g.reload <- msg:
			return
		default:
		}
		select {
		case <-g.reload:
		default:
		}
	}
}

func (g *Game) applyPendingReload() {
	select {
	case msg := <-g.reload:
		if msg.err != nil {
			g.log.Error("background error", "err", msg.err)
			g.ui.Debug.SetError(msg.err.Error())
			return
		}
		g.applyConfig(msg.cfg)
	default:
	}
}

func (g *Game) applyConfig(cfg config.AppConfig) {
	if err := g.bindEngine(cfg); err != nil {
		g.log.Warn("config reload rejected", "err", err)
		g.ui.Debug.SetError(err.Error())
		return
	}
	g.cfg = cfg
	g.ui.Debug.Clear()
	g.log.Info("config reloaded")
}

// onSurfaceClick toggles the selection of the node under the pointer. Clicks
// that end a pan never get here.
func (g *Game) onSurfaceClick(ev host.Event) {
	me, ok := ev.(*host.MouseEvent)
	if !ok {
		return
	}
	n, ok := g.graph.NodeAt(g.worldAt(me.PageX, me.PageY))
	switch {
	case !ok:
		g.selected = ""
	case n.ID == g.selected:
		g.selected = ""
	default:
		g.selected = n.ID
	}
}

func (g *Game) Update() error {
	g.applyPendingReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.ui.Debug.Visible = !g.ui.Debug.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.engine.Reset()
	}

	g.ui.Update()
	g.poller.Update()

	g.ui.Debug.SetStatus(g.engine.TransformStyle(), g.engine.Center(), g.engine.Panning())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	t := g.engine.Transform()

	canvas.DrawBackgroundGrid(screen, t, canvas.Grid{
		Step:        GridStep,
		MinGap:      GridMinGap,
		Line:        ColorGrid,
		OriginCross: ColorOriginCross,
	})
	canvas.DrawGraph(screen, t, g.graph, g.selected, canvas.Style{
		Node:         ColorNode,
		NodeSelected: ColorNodeSelected,
		Shadow:       ColorShadow,
		Edge:         ColorEdge,
		Label:        ColorLabel,
		Face:         g.face,
	})
	g.ui.Draw(screen)
}

// Layout keeps the host boxes in sync with the window so the engine's
// center and the poller's hit area follow resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if g.surface.Width != w || g.surface.Height != h {
		g.window.SetBounds(0, 0, w, h)
		g.surface.SetBounds(0, 0, w, h)
		g.engine.Refresh()
		g.ui.Layout(outsideWidth)
	}
	return outsideWidth, outsideHeight
}

// View returns what a save should capture.
func (g *Game) View() (viewport.Transform, *graph.Graph, string) {
	return g.engine.Transform(), g.graph, g.selected
}

// worldAt converts a window point to world coordinates.
func (g *Game) worldAt(x, y float64) geom.Position {
	p := host.PointerRelativeToElement(g.surface)(x, y)
	return g.engine.Transform().ToWorld(p)
}
