package encoder

import (
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// PNGEncoder renders a frame to PNG for previewing in a browser.
type PNGEncoder struct {
	// Scale enlarges every pixel to Scale x Scale. Values below 2 keep
	// the native size.
	Scale int
}

func (e *PNGEncoder) Format() string      { return "png" }
func (e *PNGEncoder) Extension() string   { return "png" }
func (e *PNGEncoder) ContentType() string { return "image/png" }

func (e *PNGEncoder) Encode(w io.Writer, f Frame) error {
	var img image.Image = grayImage(f)
	if e.Scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*e.Scale, b.Dy()*e.Scale, imaging.NearestNeighbor)
	}

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// grayImage converts frame samples to a regular-polarity gray image.
func grayImage(f Frame) *image.Gray {
	width, height := f.Size()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, s := range f.Samples() {
		if i >= len(img.Pix) {
			break
		}
		img.Pix[i] = 255 - s
	}
	return img
}
