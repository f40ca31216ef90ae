package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/viewport"
)

func TestLayoutRowFromTopRight(t *testing.T) {
	s := NewSystem(nil, Actions{ZoomIn: func() {}, ZoomOut: func() {}, Fit: func() {}})
	s.Layout(400)

	bs := s.Buttons()
	require.Len(t, bs, 3)
	assert.Equal(t, float32(360), bs[0].X)
	assert.Equal(t, float32(320), bs[1].X)
	assert.Equal(t, float32(280), bs[2].X)
	for _, b := range bs {
		assert.Equal(t, float32(10), b.Y)
	}
}

func TestClickRunsAction(t *testing.T) {
	var got []string
	s := NewSystem(nil, Actions{
		ZoomIn:  func() { got = append(got, "in") },
		ZoomOut: func() { got = append(got, "out") },
		Reset:   func() { got = append(got, "reset") },
	})
	s.Layout(400)

	assert.True(t, s.Click(370, 20))
	assert.True(t, s.Click(330, 20))
	assert.True(t, s.Click(290, 20))
	assert.False(t, s.Click(100, 100))
	assert.Equal(t, []string{"in", "out", "reset"}, got)

	assert.True(t, s.Contains(360, 10))
	assert.False(t, s.Contains(359, 10))
}

func TestHover(t *testing.T) {
	s := NewSystem(nil, Actions{ZoomIn: func() {}})
	s.Layout(100)
	s.hover(70, 20)
	assert.True(t, s.Buttons()[0].hover)
	s.hover(0, 0)
	assert.False(t, s.Buttons()[0].hover)
}

func TestDebugPanelRows(t *testing.T) {
	d := &DebugPanel{}
	assert.Empty(t, d.rows())

	d.SetStatus("translate(1px, 2px) scale(1)", viewport.Center{Top: 3, Left: 4}, true)
	assert.Empty(t, d.rows(), "status is hidden until the panel is visible")

	d.Visible = true
	assert.Equal(t, []string{"translate(1px, 2px) scale(1)", "center 4.0, 3.0", "panning"}, d.rows())

	d.SetError("boom")
	assert.Equal(t, "boom", d.rows()[3])
	d.Clear()
	assert.Len(t, d.rows(), 3)

	d.SetStatus("s", viewport.Center{}, false)
	assert.Equal(t, "idle", d.rows()[2])
}
