package host

// Box is an in-memory Element: a positioned rectangle in a tree of boxes with
// its own listener registry. The ebiten front end builds its window layout
// out of boxes and the tests use them as a stand-in host.
//
// A Box is not safe for concurrent use.
type Box struct {
	Name          string
	Left, Top     float64
	Width, Height float64

	parent   *Box
	children []*Box

	listeners map[EventType][]listenerEntry
	nextID    uint64
}

type listenerEntry struct {
	id      uint64
	capture bool
	fn      Listener
}

// NewBox creates a detached box.
func NewBox(name string, left, top, width, height float64) *Box {
	return &Box{Name: name, Left: left, Top: top, Width: width, Height: height}
}

// Append makes child a child of b, detaching it from any previous parent.
func (b *Box) Append(child *Box) *Box {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = b
	b.children = append(b.children, child)
	return child
}

// RemoveChild detaches child from b. It is a no-op if child is not b's.
func (b *Box) RemoveChild(child *Box) {
	for i, c := range b.children {
		if c == child {
			copy(b.children[i:], b.children[i+1:])
			b.children[len(b.children)-1] = nil
			b.children = b.children[:len(b.children)-1]
			child.parent = nil
			return
		}
	}
}

// Children returns the child boxes in insertion order.
func (b *Box) Children() []*Box { return b.children }

// SetBounds moves and resizes the box.
func (b *Box) SetBounds(left, top, width, height float64) {
	b.Left, b.Top, b.Width, b.Height = left, top, width, height
}

func (b *Box) OffsetLeft() float64 { return b.Left }
func (b *Box) OffsetTop() float64  { return b.Top }

// OffsetParent is the parent box; every box is a positioned container.
func (b *Box) OffsetParent() Element { return b.Parent() }

func (b *Box) Parent() Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *Box) Size() (float64, float64) { return b.Width, b.Height }

func (b *Box) AddEventListener(t EventType, l Listener) Registration {
	return b.addListener(t, l, false)
}

func (b *Box) AddCaptureListener(t EventType, l Listener) Registration {
	return b.addListener(t, l, true)
}

// ListenerCount returns how many listeners of type t are registered on b.
func (b *Box) ListenerCount(t EventType) int { return len(b.listeners[t]) }

func (b *Box) addListener(t EventType, l Listener, capture bool) Registration {
	if b.listeners == nil {
		b.listeners = make(map[EventType][]listenerEntry)
	}
	b.nextID++
	id := b.nextID
	b.listeners[t] = append(b.listeners[t], listenerEntry{id: id, capture: capture, fn: l})
	return &registration{box: b, typ: t, id: id}
}

func (b *Box) removeListener(t EventType, id uint64) {
	s := b.listeners[t]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listenerEntry{}
			b.listeners[t] = s[:len(s)-1]
			return
		}
	}
}

// Dispatch delivers ev with b as the target: capture listeners from the root
// down to b, then bubbling listeners from b up to the root, stopping early if
// a listener calls StopPropagation. It returns false if a listener called
// PreventDefault.
func (b *Box) Dispatch(ev Event) bool {
	var path []*Box
	for n := b; n != nil; n = n.parent {
		path = append(path, n)
	}

	for i := len(path) - 1; i >= 0; i-- {
		if path[i].fire(ev, true) {
			return !ev.DefaultPrevented()
		}
	}
	for _, n := range path {
		if n.fire(ev, false) {
			break
		}
	}
	return !ev.DefaultPrevented()
}

// fire runs the listeners of one phase and reports whether propagation was
// stopped. It iterates a snapshot so listeners may remove themselves.
func (b *Box) fire(ev Event, capture bool) bool {
	entries := b.listeners[ev.Type()]
	if len(entries) == 0 {
		return false
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		if e.capture != capture {
			continue
		}
		e.fn(ev)
	}
	return ev.PropagationStopped()
}

type registration struct {
	box *Box
	typ EventType
	id  uint64
}

func (r *registration) Remove() {
	if r.box == nil {
		return
	}
	r.box.removeListener(r.typ, r.id)
	r.box = nil
}
