package encoder

import (
	"errors"
	"io"
)

// ErrUnknownFormat is returned when no encoder is registered for a format.
var ErrUnknownFormat = errors.New("unknown output format")

// Frame is a rendered display surface.
type Frame interface {
	// Size returns the frame dimensions in pixels.
	Size() (width, height int)

	// Bytes returns the display memory exactly as the panel consumes it.
	Bytes() []byte

	// Samples returns one byte per pixel in row-major order,
	// 0xFF for ink and 0x00 for paper.
	Samples() []byte
}

// Encoder writes a frame in a specific output format.
type Encoder interface {
	// Format returns the output format name (e.g. "raw", "header", "ppm", "png").
	Format() string

	// Extension returns the file extension without dot.
	Extension() string

	// ContentType returns the MIME type used when serving the output.
	ContentType() string

	// Encode writes the frame to w. The text encoders write token by token;
	// png builds the whole image before writing.
	Encode(w io.Writer, f Frame) error
}
