// Package ui draws the overlay controls on top of the canvas.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

const (
	buttonSize   = 30
	buttonMargin = 10
)

// Actions are the callbacks behind the overlay buttons. Nil actions get no
// button.
type Actions struct {
	ZoomIn  func()
	ZoomOut func()
	Fit     func()
	Reset   func()
}

type System struct {
	buttons []*Button
	face    func() font.Face
	Debug   *DebugPanel
}

func NewSystem(face func() font.Face, a Actions) *System {
	s := &System{face: face, Debug: &DebugPanel{}}
	// right to left from the top-right corner
	for _, b := range []struct {
		label string
		fn    func()
	}{
		{"+", a.ZoomIn},
		{"-", a.ZoomOut},
		{"[]", a.Fit},
		{"1:1", a.Reset},
	} {
		if b.fn == nil {
			continue
		}
		s.buttons = append(s.buttons, &Button{Label: b.label, W: buttonSize, H: buttonSize, OnClick: b.fn})
	}
	return s
}

// Layout places the buttons in a row along the top-right edge of a screen
// of the given width.
func (s *System) Layout(screenWidth int) {
	x := float32(screenWidth) - buttonMargin
	for _, b := range s.buttons {
		x -= b.W
		b.X, b.Y = x, buttonMargin
		x -= buttonMargin
	}
}

func (s *System) Buttons() []*Button { return s.buttons }

// Contains reports whether (mx, my) is over a control. Canvas input ignores
// presses there.
func (s *System) Contains(mx, my int) bool {
	for _, b := range s.buttons {
		if b.Contains(mx, my) {
			return true
		}
	}
	return false
}

// Click runs the action of the button under (mx, my) and reports whether
// there was one.
func (s *System) Click(mx, my int) bool {
	for _, b := range s.buttons {
		if b.Contains(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (s *System) hover(mx, my int) {
	for _, b := range s.buttons {
		b.hover = b.Contains(mx, my)
	}
}

func (s *System) Update() {
	mx, my := ebiten.CursorPosition()
	s.hover(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Click(mx, my)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		s.Click(tx, ty)
	}
}

func (s *System) Draw(screen *ebiten.Image) {
	var face font.Face
	if s.face != nil {
		face = s.face()
	}
	for _, b := range s.buttons {
		b.Draw(screen, face)
	}
	s.Debug.Draw(screen, face)
}
