package encoder

import (
	"io"
)

const (
	ppmMagic         = "P3"
	ppmMaxColorValue = "255"
	// ppmMaxLineLen is the plain PPM limit on characters per line.
	ppmMaxLineLen = 70
	// ppmMaxTokenLen fits "255 255 255".
	ppmMaxTokenLen = 3*channelDigits + 2
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// pixelToken holds the "r g b" text of one gray sample.
type pixelToken struct {
	buf [ppmMaxTokenLen]byte
	n   int
}

// set encodes sample as three identical channels. Panel memory stores
// ink as 0xFF, so the value is inverted to regular image polarity.
func (t *pixelToken) set(sample byte) {
	c := uint32(255 - sample)
	b := t.buf[:0]
	for ch := 0; ch < 3; ch++ {
		if ch > 0 {
			b = append(b, ' ')
		}
		b = appendDecimal(b, c, channelDigits)
	}
	t.n = len(b)
}

func (t *pixelToken) bytes() []byte {
	return t.buf[:t.n]
}

// exceedsLineBudget reports whether a separator plus a token of tokenLen
// characters would push a line of lineLen characters past the limit.
func exceedsLineBudget(lineLen, tokenLen int) bool {
	return lineLen+1+tokenLen > ppmMaxLineLen
}

// startsRow reports whether sample idx is the first one of an image row
// other than the first.
func startsRow(idx, width int) bool {
	return width > 0 && idx > 0 && idx%width == 0
}

// WritePPM writes samples as a plain (P3) PPM image of the given size.
//
// Each sample becomes one gray pixel. Lines never exceed 70 characters
// and every image row starts on a new line. The dimensions are trusted:
// nothing checks that width*height matches len(samples).
//
// The first error returned by w is returned unchanged.
func WritePPM(w io.Writer, width, height int, samples []byte) error {
	if err := writePPMHeader(w, width, height); err != nil {
		return err
	}

	var (
		tok     pixelToken
		lineLen int
	)
	for idx, s := range samples {
		tok.set(s)

		if exceedsLineBudget(lineLen, tok.n) || startsRow(idx, width) {
			if _, err := w.Write(newline); err != nil {
				return err
			}
			lineLen = 0
		} else if idx > 0 {
			if _, err := w.Write(space); err != nil {
				return err
			}
			lineLen++
		}

		if _, err := w.Write(tok.bytes()); err != nil {
			return err
		}
		lineLen += tok.n
	}

	if _, err := w.Write(newline); err != nil {
		return err
	}
	_, err := w.Write(newline)
	return err
}

func writePPMHeader(w io.Writer, width, height int) error {
	var wd, ht decimal
	wd.set(uint32(width), dimensionDigits)
	ht.set(uint32(height), dimensionDigits)

	for _, part := range [][]byte{
		[]byte(ppmMagic), newline,
		wd.bytes(), space, ht.bytes(), newline,
		[]byte(ppmMaxColorValue), newline,
	} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

// PPMEncoder writes one gray PPM pixel per display pixel.
type PPMEncoder struct{}

func (e *PPMEncoder) Format() string      { return "ppm" }
func (e *PPMEncoder) Extension() string   { return "ppm" }
func (e *PPMEncoder) ContentType() string { return "image/x-portable-pixmap" }

func (e *PPMEncoder) Encode(w io.Writer, f Frame) error {
	width, height := f.Size()
	return WritePPM(w, width, height, f.Samples())
}
