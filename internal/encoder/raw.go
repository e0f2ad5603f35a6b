package encoder

import "io"

// RawEncoder writes the packed display memory unchanged.
type RawEncoder struct{}

func (e *RawEncoder) Format() string      { return "raw" }
func (e *RawEncoder) Extension() string   { return "bin" }
func (e *RawEncoder) ContentType() string { return "application/octet-stream" }

func (e *RawEncoder) Encode(w io.Writer, f Frame) error {
	_, err := w.Write(f.Bytes())
	return err
}
