package host

// EventType names a host event, using the DOM spelling.
type EventType string

const (
	EventMouseDown  EventType = "mousedown"
	EventMouseMove  EventType = "mousemove"
	EventMouseUp    EventType = "mouseup"
	EventMouseLeave EventType = "mouseleave"
	EventClick      EventType = "click"

	EventTouchStart  EventType = "touchstart"
	EventTouchMove   EventType = "touchmove"
	EventTouchEnd    EventType = "touchend"
	EventTouchCancel EventType = "touchcancel"

	EventWheel EventType = "wheel"

	EventGestureStart  EventType = "gesturestart"
	EventGestureChange EventType = "gesturechange"
	EventGestureEnd    EventType = "gestureend"
)

// Modifiers is a bitmask of keyboard modifiers held when an event fired.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Event is implemented by every event delivered to a Listener.
type Event interface {
	Type() EventType
	PreventDefault()
	DefaultPrevented() bool
	StopPropagation()
	PropagationStopped() bool
}

type baseEvent struct {
	typ              EventType
	defaultPrevented bool
	stopped          bool
}

func (e *baseEvent) Type() EventType          { return e.typ }
func (e *baseEvent) PreventDefault()          { e.defaultPrevented = true }
func (e *baseEvent) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *baseEvent) StopPropagation()         { e.stopped = true }
func (e *baseEvent) PropagationStopped() bool { return e.stopped }

// MouseEvent covers mousedown, mousemove, mouseup, mouseleave and click.
type MouseEvent struct {
	baseEvent
	PageX, PageY float64
	Button       int
	Modifiers    Modifiers
}

// NewMouseEvent builds a mouse event of type t at a page position.
func NewMouseEvent(t EventType, pageX, pageY float64) *MouseEvent {
	return &MouseEvent{baseEvent: baseEvent{typ: t}, PageX: pageX, PageY: pageY}
}

// Touch is one active contact point. Touches are listed in the order the
// platform reports them and that order is kept between events.
type Touch struct {
	ID           int
	PageX, PageY float64
}

// TouchEvent covers touchstart, touchmove, touchend and touchcancel.
// Touches holds the contacts still on the surface.
type TouchEvent struct {
	baseEvent
	Touches []Touch
}

// NewTouchEvent builds a touch event of type t.
func NewTouchEvent(t EventType, touches []Touch) *TouchEvent {
	return &TouchEvent{baseEvent: baseEvent{typ: t}, Touches: touches}
}

// WheelEvent carries scroll deltas in pixels; positive DeltaY scrolls down.
type WheelEvent struct {
	baseEvent
	PageX, PageY   float64
	DeltaX, DeltaY float64
	Modifiers      Modifiers
}

// NewWheelEvent builds a wheel event at a page position.
func NewWheelEvent(pageX, pageY, deltaX, deltaY float64, mods Modifiers) *WheelEvent {
	return &WheelEvent{
		baseEvent: baseEvent{typ: EventWheel},
		PageX:     pageX,
		PageY:     pageY,
		DeltaX:    deltaX,
		DeltaY:    deltaY,
		Modifiers: mods,
	}
}

// GestureEvent is a pinch/rotate gesture. Scale is relative to the start of
// the gesture.
type GestureEvent struct {
	baseEvent
	PageX, PageY float64
	Scale        float64
	Rotation     float64
}

// NewGestureEvent builds a gesture event of type t.
func NewGestureEvent(t EventType, pageX, pageY, scale float64) *GestureEvent {
	return &GestureEvent{baseEvent: baseEvent{typ: t}, PageX: pageX, PageY: pageY, Scale: scale}
}
