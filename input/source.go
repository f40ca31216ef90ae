package input

import (
	"github.com/hajimehoshi/ebiten/v2"

	"flowcanvas/host"
)

// Source is the polled input state of one frame.
type Source interface {
	CursorPosition() (x, y int)
	Wheel() (dx, dy float64)
	// PanButtonPressed reports whether a button that drags the canvas is held.
	PanButtonPressed() bool
	// Touches returns active touches ordered by touch ID.
	Touches() []host.Touch
	Modifiers() host.Modifiers
}

// EbitenSource reads input from ebiten. It must be used from the game's
// Update goroutine.
type EbitenSource struct {
	ids []ebiten.TouchID
}

func (s *EbitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (s *EbitenSource) Wheel() (float64, float64) { return ebiten.Wheel() }

func (s *EbitenSource) PanButtonPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
}

func (s *EbitenSource) Touches() []host.Touch {
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	if len(s.ids) == 0 {
		return nil
	}
	touches := make([]host.Touch, 0, len(s.ids))
	for _, id := range s.ids {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, host.Touch{ID: int(id), PageX: float64(x), PageY: float64(y)})
	}
	sortTouches(touches)
	return touches
}

func (s *EbitenSource) Modifiers() host.Modifiers {
	var mods host.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= host.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= host.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= host.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= host.ModMeta
	}
	return mods
}
