package viewport

import (
	"math"

	"flowcanvas/geom"
	"flowcanvas/host"
)

// Handlers is the pointer handler bundle for an interactive surface. A nil
// field means the event is not handled.
type Handlers struct {
	OnMouseDown  host.Listener
	OnMouseMove  host.Listener
	OnMouseUp    host.Listener
	OnMouseLeave host.Listener

	OnTouchStart  host.Listener
	OnTouchMove   host.Listener
	OnTouchEnd    host.Listener
	OnTouchCancel host.Listener

	// OnClickCapture belongs in the capture phase so it runs before the
	// click reaches elements under the pointer.
	OnClickCapture host.Listener
}

// Empty reports whether the bundle has no handlers.
func (h Handlers) Empty() bool {
	for _, l := range h.listeners() {
		if l != nil {
			return false
		}
	}
	return true
}

func (h Handlers) listeners() []host.Listener {
	return []host.Listener{
		h.OnMouseDown, h.OnMouseMove, h.OnMouseUp, h.OnMouseLeave,
		h.OnTouchStart, h.OnTouchMove, h.OnTouchEnd, h.OnTouchCancel,
		h.OnClickCapture,
	}
}

// Attach registers the non-nil handlers on el and returns a function that
// removes them again.
func (h Handlers) Attach(el host.Element) (detach func()) {
	if el == nil {
		return func() {}
	}
	var regs []host.Registration
	on := func(t host.EventType, l host.Listener) {
		if l != nil {
			regs = append(regs, el.AddEventListener(t, l))
		}
	}
	on(host.EventMouseDown, h.OnMouseDown)
	on(host.EventMouseMove, h.OnMouseMove)
	on(host.EventMouseUp, h.OnMouseUp)
	on(host.EventMouseLeave, h.OnMouseLeave)
	on(host.EventTouchStart, h.OnTouchStart)
	on(host.EventTouchMove, h.OnTouchMove)
	on(host.EventTouchEnd, h.OnTouchEnd)
	on(host.EventTouchCancel, h.OnTouchCancel)
	if h.OnClickCapture != nil {
		regs = append(regs, el.AddCaptureListener(host.EventClick, h.OnClickCapture))
	}
	return releaser(regs)
}

// Handlers returns the pointer handler bundle, or an empty bundle when
// PanOnDrag is off.
func (e *Engine) Handlers() Handlers {
	if !e.cfg.PanOnDrag {
		return Handlers{}
	}
	return Handlers{
		OnMouseDown:    e.onMouseDown,
		OnMouseMove:    e.onMouseMove,
		OnMouseUp:      e.onPointerEnd,
		OnMouseLeave:   e.onPointerEnd,
		OnTouchStart:   e.onTouchStart,
		OnTouchMove:    e.onTouchMove,
		OnTouchEnd:     e.onPointerEnd,
		OnTouchCancel:  e.onPointerEnd,
		OnClickCapture: e.onClickCapture,
	}
}

// SetContainer binds the wheel and gesture listeners to el. Any previous
// binding is released first. The returned cleanup releases this binding;
// calling it more than once is harmless. Passing nil only releases.
//
// el must be a nil interface, not a typed nil pointer, to mean "no host".
func (e *Engine) SetContainer(el host.Element) (cleanup func()) {
	if e.unbind != nil {
		e.unbind()
		e.unbind = nil
	}
	e.container = el
	defer e.store.Refresh()

	if el == nil {
		return func() {}
	}
	unbind := releaser([]host.Registration{
		el.AddEventListener(host.EventWheel, e.onWheel),
		el.AddEventListener(host.EventGestureStart, e.onGestureStart),
		el.AddEventListener(host.EventGestureChange, e.onGesture),
		el.AddEventListener(host.EventGestureEnd, e.onGesture),
	})
	e.unbind = unbind
	return unbind
}

func releaser(regs []host.Registration) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		for _, r := range regs {
			r.Remove()
		}
	}
}

func (e *Engine) onMouseDown(ev host.Event) {
	if me, ok := ev.(*host.MouseEvent); ok {
		e.StartPan(PointerSet{{X: me.PageX, Y: me.PageY}})
	}
}

func (e *Engine) onMouseMove(ev host.Event) {
	if me, ok := ev.(*host.MouseEvent); ok {
		e.MovePan(PointerSet{{X: me.PageX, Y: me.PageY}})
	}
}

func (e *Engine) onTouchStart(ev host.Event) {
	if te, ok := ev.(*host.TouchEvent); ok {
		e.StartPan(touchPointers(te.Touches))
	}
}

func (e *Engine) onTouchMove(ev host.Event) {
	if te, ok := ev.(*host.TouchEvent); ok {
		e.MovePan(touchPointers(te.Touches))
	}
}

func (e *Engine) onPointerEnd(host.Event) { e.EndPan() }

func touchPointers(touches []host.Touch) PointerSet {
	ps := make(PointerSet, len(touches))
	for i, t := range touches {
		ps[i] = geom.Position{X: t.PageX, Y: t.PageY}
	}
	return ps
}

func (e *Engine) onClickCapture(ev host.Event) {
	if e.cfg.PreventClickOnPan && e.wasPanning {
		e.wasPanning = false
		ev.StopPropagation()
	}
}

func (e *Engine) onWheel(ev host.Event) {
	we, ok := ev.(*host.WheelEvent)
	if !ok {
		return
	}
	we.PreventDefault()

	if e.cfg.EnableZoom && (!e.cfg.RequireCtrlToZoom || e.cfg.ZoomModifier(we.Modifiers)) {
		anchor := e.anchorAt(we.PageX, we.PageY)
		factor := math.Pow(1-e.cfg.ZoomSensitivity, we.DeltaY)
		e.UpdateZoom(func(z float64) float64 { return z * factor }, &anchor)
		e.cfg.OnZoom()
		return
	}
	if e.cfg.EnablePan {
		s := e.cfg.ScrollPanSensitivity
		e.PanBy(-we.DeltaX*s, -we.DeltaY*s)
	}
}

func (e *Engine) onGestureStart(ev host.Event) {
	ev.PreventDefault()
	e.gestureZoom = e.Zoom()
	e.log.Debug("gesture start", "zoom", e.gestureZoom)
}

func (e *Engine) onGesture(ev host.Event) {
	ev.PreventDefault()
	ge, ok := ev.(*host.GestureEvent)
	if !ok || !e.cfg.EnableZoom {
		return
	}
	anchor := e.anchorAt(ge.PageX, ge.PageY)
	e.SetZoom(e.gestureZoom*ge.Scale, &anchor)
	e.cfg.OnZoom()
}

func (e *Engine) anchorAt(pageX, pageY float64) geom.Position {
	return host.PointerRelativeToElement(e.container)(pageX, pageY)
}
