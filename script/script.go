// Package script drives a viewport from Starlark programs.
//
// A script sees these builtins:
//
//	pan(dx, dy)                 move the view by a screen delta
//	set_pan(x, y)               place the view
//	zoom(z, x=None, y=None)     set the zoom, anchored at (x, y) or the view center
//	zoom_by(f, x=None, y=None)  multiply the zoom
//	fit(padding=0)              frame the content rectangle
//	fit_rect(x, y, w, h, padding=0)
//	reset()                     restore the initial transform
//	transform()                 {"x", "y", "zoom"}
//	center()                    {"top", "left"}
//
// Mutating builtins return the resulting transform dict.
package script

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"flowcanvas/geom"
	"flowcanvas/viewport"
)

// Viewport is the part of *viewport.Engine a script may drive.
type Viewport interface {
	Transform() viewport.Transform
	Center() viewport.Center
	PanBy(dx, dy float64) viewport.Transform
	SetPan(p geom.Position) viewport.Transform
	SetZoom(z float64, anchor *geom.Position) viewport.Transform
	ZoomBy(factor float64, anchor *geom.Position) viewport.Transform
	FitBounds(r geom.Rect, padding float64) viewport.Transform
	Reset() viewport.Transform
}

// Runner executes scripts against one viewport.
type Runner struct {
	View Viewport
	// Content returns the world rectangle fit() frames. If nil, fit()
	// fails and scripts must use fit_rect.
	Content func() geom.Rect
	Log     *slog.Logger
}

// Run executes src with the viewport builtins and inputs predeclared, and
// returns the script's globals converted to Go values. Globals whose values
// have no Go counterpart are dropped.
func (r *Runner) Run(name, src string, inputs map[string]interface{}) (map[string]interface{}, error) {
	if r.View == nil {
		return nil, fmt.Errorf("script %s: no viewport", name)
	}
	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Info(msg, "script", name)
		},
	}

	globals := r.builtins()
	for k, v := range inputs {
		val, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("script %s: input %q: %w", name, k, err)
		}
		globals[k] = val
	}

	resultGlobals, err := starlark.ExecFile(thread, name, src, globals)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(resultGlobals))
	for k, v := range resultGlobals {
		if gv := FromStarlarkValue(v); gv != nil {
			out[k] = gv
		}
	}
	return out, nil
}

func (r *Runner) builtins() starlark.StringDict {
	return starlark.StringDict{
		"pan":       starlark.NewBuiltin("pan", r.pan),
		"set_pan":   starlark.NewBuiltin("set_pan", r.setPan),
		"zoom":      starlark.NewBuiltin("zoom", r.zoom),
		"zoom_by":   starlark.NewBuiltin("zoom_by", r.zoomBy),
		"fit":       starlark.NewBuiltin("fit", r.fit),
		"fit_rect":  starlark.NewBuiltin("fit_rect", r.fitRect),
		"reset":     starlark.NewBuiltin("reset", r.reset),
		"transform": starlark.NewBuiltin("transform", r.transform),
		"center":    starlark.NewBuiltin("center", r.center),
	}
}

func (r *Runner) pan(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dx, dy starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "dx", &dx, "dy", &dy); err != nil {
		return nil, err
	}
	fx, fy, err := floats2(b, "dx", dx, "dy", dy)
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.PanBy(fx, fy))
}

func (r *Runner) setPan(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	fx, fy, err := floats2(b, "x", x, "y", y)
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.SetPan(geom.Position{X: fx, Y: fy}))
}

func (r *Runner) zoom(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	z, anchor, err := unpackZoom(b, args, kwargs, "z")
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.SetZoom(z, anchor))
}

func (r *Runner) zoomBy(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	f, anchor, err := unpackZoom(b, args, kwargs, "factor")
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.ZoomBy(f, anchor))
}

func unpackZoom(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, first string) (float64, *geom.Position, error) {
	var v, x, y starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, first, &v, "x?", &x, "y?", &y); err != nil {
		return 0, nil, err
	}
	f, err := toFloat(b, first, v)
	if err != nil {
		return 0, nil, err
	}
	if isNone(x) && isNone(y) {
		return f, nil, nil
	}
	if isNone(x) || isNone(y) {
		return 0, nil, fmt.Errorf("%s: x and y must be given together", b.Name())
	}
	ax, ay, err := floats2(b, "x", x, "y", y)
	if err != nil {
		return 0, nil, err
	}
	return f, &geom.Position{X: ax, Y: ay}, nil
}

func (r *Runner) fit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var padding starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "padding?", &padding); err != nil {
		return nil, err
	}
	if r.Content == nil {
		return nil, fmt.Errorf("%s: no content to fit", b.Name())
	}
	p, err := optFloat(b, "padding", padding)
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.FitBounds(r.Content(), p))
}

func (r *Runner) fitRect(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y, w, h, padding starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"x", &x, "y", &y, "w", &w, "h", &h, "padding?", &padding); err != nil {
		return nil, err
	}
	var rect geom.Rect
	var err error
	if rect.X, rect.Y, err = floats2(b, "x", x, "y", y); err != nil {
		return nil, err
	}
	if rect.Width, rect.Height, err = floats2(b, "w", w, "h", h); err != nil {
		return nil, err
	}
	p, err := optFloat(b, "padding", padding)
	if err != nil {
		return nil, err
	}
	return transformDict(r.View.FitBounds(rect, p))
}

func (r *Runner) reset(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return transformDict(r.View.Reset())
}

func (r *Runner) transform(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return transformDict(r.View.Transform())
}

func (r *Runner) center(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	c := r.View.Center()
	return newDict(map[string]float64{"top": c.Top, "left": c.Left})
}

func transformDict(t viewport.Transform) (starlark.Value, error) {
	return newDict(map[string]float64{"x": t.X, "y": t.Y, "zoom": t.Zoom})
}

func newDict(m map[string]float64) (*starlark.Dict, error) {
	d := starlark.NewDict(len(m))
	for k, v := range m {
		if err := d.SetKey(starlark.String(k), starlark.Float(v)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func isNone(v starlark.Value) bool { return v == nil || v == starlark.None }

func toFloat(b *starlark.Builtin, name string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: %s must be a number, got %s", b.Name(), name, v.Type())
	}
	return f, nil
}

func optFloat(b *starlark.Builtin, name string, v starlark.Value) (float64, error) {
	if isNone(v) {
		return 0, nil
	}
	return toFloat(b, name, v)
}

func floats2(b *starlark.Builtin, n1 string, v1 starlark.Value, n2 string, v2 starlark.Value) (float64, float64, error) {
	f1, err := toFloat(b, n1, v1)
	if err != nil {
		return 0, 0, err
	}
	f2, err := toFloat(b, n2, v2)
	if err != nil {
		return 0, 0, err
	}
	return f1, f2, nil
}
