package main

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const uiFontPath = "fonts/Roboto-Regular.ttf"

// LoadUIFont loads a TrueType face from path, falling back to
// basicfont.Face7x13 when the file is missing or unreadable.
func LoadUIFont(log *slog.Logger, path string, size float64) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("ui font not found, using basic font", "path", path, "err", err)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Warn("ui font parse error, using basic font", "path", path, "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Warn("ui font face error, using basic font", "path", path, "err", err)
		return basicfont.Face7x13
	}
	return face
}
