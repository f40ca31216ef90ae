package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"flowcanvas/viewport"
)

var (
	debugBackground = color.RGBA{40, 40, 40, 220}
	debugText       = color.RGBA{200, 200, 210, 255}
	debugError      = color.RGBA{255, 200, 50, 255}
)

// DebugPanel shows the live transform in the bottom-left corner and the
// last error, if any.
type DebugPanel struct {
	Visible bool
	Lines   []string
	Error   string
}

// SetStatus replaces the status lines with the engine's current state.
func (d *DebugPanel) SetStatus(style string, c viewport.Center, panning bool) {
	state := "idle"
	if panning {
		state = "panning"
	}
	d.Lines = append(d.Lines[:0],
		style,
		fmt.Sprintf("center %.1f, %.1f", c.Left, c.Top),
		state,
	)
}

func (d *DebugPanel) SetError(msg string) { d.Error = msg }

func (d *DebugPanel) Clear() { d.Error = "" }

const (
	debugWidth      = 320
	debugLineHeight = 18
	debugPad        = 8
)

func (d *DebugPanel) rows() []string {
	var rows []string
	if d.Visible {
		rows = append(rows, d.Lines...)
	}
	if d.Error != "" {
		rows = append(rows, d.Error)
	}
	return rows
}

func (d *DebugPanel) height() int {
	return len(d.rows())*debugLineHeight + 2*debugPad
}

func (d *DebugPanel) Draw(screen *ebiten.Image, face font.Face) {
	rows := d.rows()
	if len(rows) == 0 {
		return
	}
	h := d.height()
	y := screen.Bounds().Dy() - h - buttonMargin
	vector.DrawFilledRect(screen, float32(buttonMargin), float32(y), debugWidth, float32(h), debugBackground, false)
	if face == nil {
		return
	}
	ascent := face.Metrics().Ascent.Ceil()
	for i, row := range rows {
		clr := color.Color(debugText)
		if d.Error != "" && i == len(rows)-1 {
			clr = debugError
		}
		text.Draw(screen, row, face, buttonMargin+debugPad, y+debugPad+i*debugLineHeight+ascent, clr)
	}
}
