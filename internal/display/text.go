package display

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontSize selects one of the three text faces.
type FontSize int

const (
	Small FontSize = iota
	Medium
	Big
)

// pixel heights of the faces, matching 6x9, 8x13 and 10x20 bitmap fonts.
var fontPixels = map[FontSize]float64{
	Small:  9,
	Medium: 13,
	Big:    20,
}

var parseMono = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gomono.TTF)
})

// face returns the display's face for size. Faces keep glyph buffers, so
// each display owns its own.
func (d *Display) face(size FontSize) (font.Face, error) {
	if f, ok := d.faces[size]; ok {
		return f, nil
	}
	px, ok := fontPixels[size]
	if !ok {
		return nil, fmt.Errorf("unknown font size %d", size)
	}
	fnt, err := parseMono()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	if d.faces == nil {
		d.faces = make(map[FontSize]font.Face)
	}
	d.faces[size] = f
	return f, nil
}

// DrawSmallText draws text with the 9px face.
func (d *Display) DrawSmallText(text string, x, y int, centered bool) error {
	return d.DrawText(text, x, y, centered, Small)
}

// DrawMediumText draws text with the 13px face.
func (d *Display) DrawMediumText(text string, x, y int, centered bool) error {
	return d.DrawText(text, x, y, centered, Medium)
}

// DrawBigText draws text with the 20px face.
func (d *Display) DrawBigText(text string, x, y int, centered bool) error {
	return d.DrawText(text, x, y, centered, Big)
}

// DrawText draws text in ink with its first baseline at y. Each '\n'
// starts a new line one face height lower. Centered lines are centered
// on x, otherwise they start at x.
func (d *Display) DrawText(text string, x, y int, centered bool, size FontSize) error {
	face, err := d.face(size)
	if err != nil {
		return err
	}

	dr := font.Drawer{Dst: d, Src: image.Black, Face: face}
	dot := fixed.P(x, y)
	for _, line := range strings.Split(text, "\n") {
		dr.Dot = dot
		if centered {
			dr.Dot.X -= dr.MeasureString(line) / 2
		}
		dr.DrawString(line)
		dot.Y += face.Metrics().Height
	}
	return nil
}

// TextWidth returns the advance of the widest line of text in pixels.
func (d *Display) TextWidth(text string, size FontSize) (int, error) {
	face, err := d.face(size)
	if err != nil {
		return 0, err
	}
	var widest fixed.Int26_6
	for _, line := range strings.Split(text, "\n") {
		widest = max(widest, font.MeasureString(face, line))
	}
	return widest.Ceil(), nil
}
