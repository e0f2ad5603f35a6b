package display

import (
	"image"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// StrokeCircle outlines the circle whose bounding box has its top-left
// corner at (x, y) and the given diameter. The stroke lies inside the box.
func (d *Display) StrokeCircle(x, y, diameter, width int) {
	r := float32(diameter) / 2
	cx, cy := float32(x)+r, float32(y)+r

	z := d.rasterizer()
	circlePath(z, cx, cy, r, false)
	if inner := r - float32(width); inner > 0 {
		circlePath(z, cx, cy, inner, true)
	}
	d.fill(z)
}

// StrokeRect outlines a w x h rectangle with its top-left corner at (x, y).
// The stroke lies inside the rectangle.
func (d *Display) StrokeRect(x, y, w, h, width int) {
	z := d.rasterizer()
	rectPath(z, float32(x), float32(y), float32(x+w), float32(y+h), false)
	if 2*width < w && 2*width < h {
		rectPath(z, float32(x+width), float32(y+width), float32(x+w-width), float32(y+h-width), true)
	}
	d.fill(z)
}

// FillRect paints a solid w x h rectangle.
func (d *Display) FillRect(x, y, w, h int) {
	z := d.rasterizer()
	rectPath(z, float32(x), float32(y), float32(x+w), float32(y+h), false)
	d.fill(z)
}

func (d *Display) rasterizer() *vector.Rasterizer {
	b := d.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func (d *Display) fill(z *vector.Rasterizer) {
	z.Draw(d, d.Bounds(), image.Black, image.Point{})
}

// circlePath adds a closed circle. Opposite windings cancel, which is how
// the inner edge of a stroke is cut out.
func circlePath(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * kappa
	s := float32(1)
	if reverse {
		s = -1
	}
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+s*k, cx+k, cy+s*r, cx, cy+s*r)
	z.CubeTo(cx-k, cy+s*r, cx-r, cy+s*k, cx-r, cy)
	z.CubeTo(cx-r, cy-s*k, cx-k, cy-s*r, cx, cy-s*r)
	z.CubeTo(cx+k, cy-s*r, cx+r, cy-s*k, cx+r, cy)
	z.ClosePath()
}

func rectPath(z *vector.Rasterizer, x0, y0, x1, y1 float32, reverse bool) {
	z.MoveTo(x0, y0)
	if reverse {
		z.LineTo(x0, y1)
		z.LineTo(x1, y1)
		z.LineTo(x1, y0)
	} else {
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
	}
	z.ClosePath()
}
