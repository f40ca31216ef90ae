// Package host models the surface that interaction listeners are bound to:
// a tree of positioned elements that report their offsets and size and
// deliver events to registered listeners.
package host

import "flowcanvas/geom"

// Listener receives events from an Element.
type Listener func(Event)

// Registration removes a listener. Remove is safe to call more than once.
type Registration interface {
	Remove()
}

// Element is a host element. Implementations must return a nil interface
// (not a typed nil) from OffsetParent and Parent at the root.
type Element interface {
	// OffsetLeft and OffsetTop are relative to OffsetParent.
	OffsetLeft() float64
	OffsetTop() float64
	OffsetParent() Element
	// Parent is the ownership parent used for containment tests.
	Parent() Element
	Size() (width, height float64)

	AddEventListener(t EventType, l Listener) Registration
	// AddCaptureListener registers l for the capture phase, which runs from
	// the root down to the target before the bubbling listeners.
	AddCaptureListener(t EventType, l Listener) Registration
}

// Offset is the absolute page position of an element's origin.
type Offset struct {
	Left, Top float64
}

// ResolveOffset sums the offsets of el and every ancestor on its
// OffsetParent chain. A nil element has offset {0, 0}.
func ResolveOffset(el Element) Offset {
	var off Offset
	for ; el != nil; el = el.OffsetParent() {
		off.Left += el.OffsetLeft()
		off.Top += el.OffsetTop()
	}
	return off
}

// PointerRelativeToElement returns a converter from page coordinates to
// coordinates relative to el's origin.
func PointerRelativeToElement(el Element) func(pageX, pageY float64) geom.Position {
	off := ResolveOffset(el)
	return func(pageX, pageY float64) geom.Position {
		return geom.Position{X: pageX - off.Left, Y: pageY - off.Top}
	}
}

// IsDescendant reports whether node is ancestor or sits below it on the
// Parent chain. It is false when either is nil.
func IsDescendant(node, ancestor Element) bool {
	if node == nil || ancestor == nil {
		return false
	}
	if node == ancestor {
		return true
	}
	return IsDescendant(node.Parent(), ancestor)
}

// SizeOf returns the element size, or 0x0 for a nil element.
func SizeOf(el Element) (width, height float64) {
	if el == nil {
		return 0, 0
	}
	return el.Size()
}
