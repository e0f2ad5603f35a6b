package display

import (
	"github.com/AnyUserName/pitboard/internal/encoder"
)

// SaveFile encodes the panel with enc into the file at path through a
// write buffer of bufSize bytes.
func (d *Display) SaveFile(path string, enc encoder.Encoder, bufSize int) error {
	return encoder.WriteFile(path, enc, d, bufSize)
}

// SaveHeaderFile writes the panel memory as a C array named name.
func (d *Display) SaveHeaderFile(path, name string) error {
	return d.SaveFile(path, &encoder.HeaderEncoder{Name: name}, encoder.DefaultBufferSize)
}

// SavePPMFile writes the panel as a plain PPM image, one pixel per panel pixel.
func (d *Display) SavePPMFile(path string) error {
	return d.SaveFile(path, &encoder.PPMEncoder{}, encoder.DefaultBufferSize)
}
