// Package input turns ebiten's per-frame polled input into host events.
//
// ebiten exposes input as state (is the button down, where is the cursor)
// rather than as events, so the Poller diffs each frame against the last one
// and dispatches the matching mouse, touch, wheel and gesture events on its
// target element. Platforms without native pinch events get gesture events
// synthesized from the first two touches.
package input

import (
	"math"
	"slices"

	"flowcanvas/geom"
	"flowcanvas/host"
)

// Target is an element that can dispatch events, such as *host.Box.
type Target interface {
	host.Element
	Dispatch(ev host.Event) bool
}

// Options tunes the poller.
type Options struct {
	// WheelLineHeight converts one wheel notch to pixels of scroll delta.
	WheelLineHeight float64
	// Ignore reports screen points where a press must not reach the target,
	// for example over overlay buttons.
	Ignore func(x, y int) bool
}

// DefaultWheelLineHeight is used when Options.WheelLineHeight is zero.
const DefaultWheelLineHeight = 20

// Poller dispatches host events for the changes between frames.
type Poller struct {
	src    Source
	target Target
	opts   Options

	pressed      bool
	inside       bool
	lastX, lastY int
	seenCursor   bool

	touches []host.Touch
	pinch   pinchState
}

type pinchState struct {
	active      bool
	initialDist float64
	scale       float64
	mid         geom.Position
}

// NewPoller creates a poller reading src and dispatching on target.
func NewPoller(src Source, target Target, opts Options) *Poller {
	if opts.WheelLineHeight == 0 {
		opts.WheelLineHeight = DefaultWheelLineHeight
	}
	return &Poller{src: src, target: target, opts: opts}
}

// SetTarget changes the element events are dispatched on.
func (p *Poller) SetTarget(t Target) { p.target = t }

// Update reads one frame of input. Call it once per ebiten Update.
func (p *Poller) Update() {
	if p.target == nil {
		return
	}
	mods := p.src.Modifiers()
	touches := p.src.Touches()

	if len(touches) > 0 || len(p.touches) > 0 {
		p.updateTouches(touches)
	} else {
		p.updateMouse(mods)
	}
	p.updateWheel(mods)
}

func (p *Poller) contains(x, y float64) bool {
	off := host.ResolveOffset(p.target)
	w, h := p.target.Size()
	return geom.Rect{X: off.Left, Y: off.Top, Width: w, Height: h}.Contains(geom.Position{X: x, Y: y})
}

func (p *Poller) ignored(x, y int) bool {
	return p.opts.Ignore != nil && p.opts.Ignore(x, y)
}

func (p *Poller) mouse(t host.EventType, x, y int, mods host.Modifiers) {
	ev := host.NewMouseEvent(t, float64(x), float64(y))
	ev.Modifiers = mods
	p.target.Dispatch(ev)
}

func (p *Poller) updateMouse(mods host.Modifiers) {
	x, y := p.src.CursorPosition()
	inside := p.contains(float64(x), float64(y))
	moved := !p.seenCursor || x != p.lastX || y != p.lastY

	if moved && (inside || p.pressed) {
		p.mouse(host.EventMouseMove, x, y, mods)
	}

	pressed := p.src.PanButtonPressed()
	switch {
	case pressed && !p.pressed:
		if inside && !p.ignored(x, y) {
			p.pressed = true
			p.mouse(host.EventMouseDown, x, y, mods)
		}
	case !pressed && p.pressed:
		p.pressed = false
		p.mouse(host.EventMouseUp, x, y, mods)
		if inside {
			p.mouse(host.EventClick, x, y, mods)
		}
	}

	if p.seenCursor && p.inside && !inside {
		p.mouse(host.EventMouseLeave, x, y, mods)
	}

	p.inside = inside
	p.lastX, p.lastY = x, y
	p.seenCursor = true
}

func (p *Poller) updateTouches(cur []host.Touch) {
	prev := p.touches
	p.touches = slices.Clone(cur)

	ended := false
	for _, t := range prev {
		if !hasTouch(cur, t.ID) {
			ended = true
			break
		}
	}
	started := false
	for _, t := range cur {
		if !hasTouch(prev, t.ID) {
			started = true
			break
		}
	}

	if ended {
		p.target.Dispatch(host.NewTouchEvent(host.EventTouchEnd, slices.Clone(cur)))
	}
	if started {
		p.target.Dispatch(host.NewTouchEvent(host.EventTouchStart, slices.Clone(cur)))
	} else if !ended && touchesMoved(prev, cur) {
		p.target.Dispatch(host.NewTouchEvent(host.EventTouchMove, slices.Clone(cur)))
	}

	p.updatePinch(cur)
}

func (p *Poller) updatePinch(cur []host.Touch) {
	if len(cur) < 2 {
		if p.pinch.active {
			p.pinch.active = false
			p.target.Dispatch(host.NewGestureEvent(host.EventGestureEnd, p.pinch.mid.X, p.pinch.mid.Y, p.pinch.scale))
		}
		return
	}

	a, b := cur[0], cur[1]
	mid := geom.Position{X: (a.PageX + b.PageX) / 2, Y: (a.PageY + b.PageY) / 2}
	dist := math.Hypot(b.PageX-a.PageX, b.PageY-a.PageY)

	if !p.pinch.active {
		if dist == 0 {
			return
		}
		p.pinch = pinchState{active: true, initialDist: dist, scale: 1, mid: mid}
		p.target.Dispatch(host.NewGestureEvent(host.EventGestureStart, mid.X, mid.Y, 1))
		return
	}

	scale := dist / p.pinch.initialDist
	if scale == p.pinch.scale && mid == p.pinch.mid {
		return
	}
	p.pinch.scale = scale
	p.pinch.mid = mid
	p.target.Dispatch(host.NewGestureEvent(host.EventGestureChange, mid.X, mid.Y, scale))
}

func (p *Poller) updateWheel(mods host.Modifiers) {
	dx, dy := p.src.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	x, y := p.src.CursorPosition()
	if !p.contains(float64(x), float64(y)) {
		return
	}
	// ebiten reports positive y for scrolling up; wheel events use the
	// browser convention where positive DeltaY scrolls down.
	lh := p.opts.WheelLineHeight
	p.target.Dispatch(host.NewWheelEvent(float64(x), float64(y), -dx*lh, -dy*lh, mods))
}

func hasTouch(ts []host.Touch, id int) bool {
	for _, t := range ts {
		if t.ID == id {
			return true
		}
	}
	return false
}

func touchesMoved(prev, cur []host.Touch) bool {
	if len(prev) != len(cur) {
		return true
	}
	for i := range cur {
		if cur[i] != prev[i] {
			return true
		}
	}
	return false
}

// sortTouches orders touches by ID so index positions stay stable between
// frames.
func sortTouches(ts []host.Touch) {
	slices.SortFunc(ts, func(a, b host.Touch) int { return a.ID - b.ID })
}
