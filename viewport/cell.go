package viewport

// Cell is a single-owner mutable value read and written through methods, so
// handlers registered long ago always see the live value instead of one
// captured when they were created.
type Cell[T any] struct {
	v T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] { return &Cell[T]{v: v} }

// Get returns the current value.
func (c *Cell[T]) Get() T { return c.v }

// Set stores v and returns it.
func (c *Cell[T]) Set(v T) T {
	c.v = v
	return c.v
}

// Update replaces the value with f(current) and returns the new value.
func (c *Cell[T]) Update(f func(T) T) T {
	c.v = f(c.v)
	return c.v
}
