package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor      = color.RGBA{60, 60, 70, 200}
	buttonHoverColor = color.RGBA{80, 80, 95, 230}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()

	hover bool
}

func (b *Button) Contains(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

// Draw renders the button with its label centered. A nil face skips the
// label.
func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	clr := buttonColor
	if b.hover {
		clr = buttonHoverColor
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, clr, false)
	if face == nil {
		return
	}
	bounds, _ := font.BoundString(face, b.Label)
	tw := (bounds.Max.X - bounds.Min.X).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	x := int(b.X) + (int(b.W)-tw)/2
	y := int(b.Y) + (int(b.H)+ascent)/2 - 1
	text.Draw(screen, b.Label, face, x, y, color.White)
}
