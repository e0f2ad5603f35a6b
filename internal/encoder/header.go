package encoder

import (
	"io"
	"strconv"
)

// DefaultArrayName is the C identifier used when none is configured.
const DefaultArrayName = "gImage_pitboard"

// hexTokensPerLine is how many "0xNN," tokens share one source line.
const hexTokensPerLine = 16

const hexDigits = "0123456789abcdef"

// WriteCArray writes data as a C byte array definition:
//
//	const unsigned char name[len] = {
//	0x00,0x1f,...
//	};
//
// Each byte becomes one lowercase "0xNN," token, 16 tokens per line.
// The first error returned by w is returned unchanged.
func WriteCArray(w io.Writer, name string, data []byte) error {
	decl := make([]byte, 0, 64)
	decl = append(decl, "const unsigned char "...)
	decl = append(decl, name...)
	decl = append(decl, '[')
	decl = strconv.AppendInt(decl, int64(len(data)), 10)
	decl = append(decl, "] = {\n"...)
	if _, err := w.Write(decl); err != nil {
		return err
	}

	var line [hexTokensPerLine*5 + 1]byte
	for start := 0; start < len(data); start += hexTokensPerLine {
		end := min(start+hexTokensPerLine, len(data))
		b := line[:0]
		for _, c := range data[start:end] {
			b = append(b, '0', 'x', hexDigits[c>>4], hexDigits[c&0x0f], ',')
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "};\n")
	return err
}

// HeaderEncoder writes the packed display memory as a C array definition
// that firmware can compile in.
type HeaderEncoder struct {
	// Name is the C identifier of the array. Empty means DefaultArrayName.
	Name string
}

func (e *HeaderEncoder) Format() string      { return "header" }
func (e *HeaderEncoder) Extension() string   { return "h" }
func (e *HeaderEncoder) ContentType() string { return "text/plain; charset=utf-8" }

func (e *HeaderEncoder) Encode(w io.Writer, f Frame) error {
	name := e.Name
	if name == "" {
		name = DefaultArrayName
	}
	return WriteCArray(w, name, f.Bytes())
}
