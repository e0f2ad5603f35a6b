// Package display models a 1-bit e-paper panel as a packed frame buffer
// that image/draw, font and vector renderers can draw into.
package display

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Default panel size of the GDEW042T2 4.2" e-paper display.
const (
	DefaultWidth  = 400
	DefaultHeight = 300
)

// Rotation is the clockwise rotation of the logical drawing surface
// relative to the panel, in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation validates a rotation given in degrees.
func ParseRotation(deg int) (Rotation, error) {
	switch r := Rotation(deg); r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return r, nil
	}
	return 0, fmt.Errorf("unsupported rotation %d (want 0, 90, 180 or 270)", deg)
}

// Ink and Paper are the only colors At returns.
var (
	Ink   = color.Gray{Y: 0x00}
	Paper = color.Gray{Y: 0xFF}
)

// Display is a monochrome frame buffer. Pixels are packed MSB first,
// row-major, (width+7)/8 bytes per row. A set bit is ink; the panel reads
// 0xFF as black.
//
// A Display is not safe for concurrent use.
type Display struct {
	width, height int
	stride        int
	rotation      Rotation
	buf           []byte

	faces map[FontSize]font.Face
}

// New returns a cleared display of the given panel size.
func New(width, height int, rotation Rotation) *Display {
	stride := (width + 7) / 8
	return &Display{
		width:    width,
		height:   height,
		stride:   stride,
		rotation: rotation,
		buf:      make([]byte, stride*height),
	}
}

// Default returns a cleared 400x300 display without rotation.
func Default() *Display {
	return New(DefaultWidth, DefaultHeight, Rotate0)
}

// Size returns the panel dimensions, independent of rotation.
func (d *Display) Size() (width, height int) {
	return d.width, d.height
}

// Bytes returns the packed panel memory. The slice aliases the display.
func (d *Display) Bytes() []byte {
	return d.buf
}

// Samples returns one byte per panel pixel in row-major order:
// 0xFF for ink, 0x00 for paper.
func (d *Display) Samples() []byte {
	out := make([]byte, d.width*d.height)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			if d.inkAt(x, y) {
				out[y*d.width+x] = 0xFF
			}
		}
	}
	return out
}

// Clear resets every pixel to paper.
func (d *Display) Clear() {
	clear(d.buf)
}

func (d *Display) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the logical drawing area, which is the panel size with
// width and height swapped for quarter turns.
func (d *Display) Bounds() image.Rectangle {
	if d.rotation == Rotate90 || d.rotation == Rotate270 {
		return image.Rect(0, 0, d.height, d.width)
	}
	return image.Rect(0, 0, d.width, d.height)
}

func (d *Display) At(x, y int) color.Color {
	px, py, ok := d.panelPoint(x, y)
	if !ok || !d.inkAt(px, py) {
		return Paper
	}
	return Ink
}

// Set paints a logical pixel. Colors darker than mid gray become ink.
// Points outside the bounds are ignored.
func (d *Display) Set(x, y int, c color.Color) {
	px, py, ok := d.panelPoint(x, y)
	if !ok {
		return
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	i, mask := d.bit(px, py)
	if g.Y < 0x80 {
		d.buf[i] |= mask
	} else {
		d.buf[i] &^= mask
	}
}

// panelPoint maps logical coordinates to panel coordinates.
func (d *Display) panelPoint(x, y int) (int, int, bool) {
	if !(image.Point{x, y}).In(d.Bounds()) {
		return 0, 0, false
	}
	switch d.rotation {
	case Rotate90:
		return d.width - 1 - y, x, true
	case Rotate180:
		return d.width - 1 - x, d.height - 1 - y, true
	case Rotate270:
		return y, d.height - 1 - x, true
	}
	return x, y, true
}

func (d *Display) bit(px, py int) (int, byte) {
	return py*d.stride + px/8, 0x80 >> (px % 8)
}

func (d *Display) inkAt(px, py int) bool {
	i, mask := d.bit(px, py)
	return d.buf[i]&mask != 0
}
