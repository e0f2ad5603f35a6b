package encoder

// maxDecimalDigits bounds every decimal emitted by this package.
const maxDecimalDigits = 8

const (
	dimensionDigits = 6 // image width and height
	channelDigits   = 3 // one color channel, 0-255
)

// decimal is a fixed-capacity digit buffer filled from the back, so the
// most significant digit ends up first without shifting.
type decimal struct {
	buf [maxDecimalDigits]byte
	off int
}

// set stores the decimal text of v using at most maxDigits digits.
// No leading zeros are written; zero encodes as "0". Values wider than
// maxDigits are a caller bug and keep only their low digits.
func (d *decimal) set(v uint32, maxDigits int) {
	if maxDigits < 1 || maxDigits > maxDecimalDigits {
		panic("encoder: decimal digit bound out of range")
	}
	d.off = len(d.buf)
	for i := 0; i < maxDigits; i++ {
		d.off--
		d.buf[d.off] = byte(v%10) + '0'
		v /= 10
		if v == 0 {
			break
		}
	}
}

func (d *decimal) bytes() []byte {
	return d.buf[d.off:]
}

// appendDecimal appends the decimal text of v to dst.
func appendDecimal(dst []byte, v uint32, maxDigits int) []byte {
	var d decimal
	d.set(v, maxDigits)
	return append(dst, d.bytes()...)
}
