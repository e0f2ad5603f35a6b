package encoder

import (
	"bytes"
	"errors"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var hexToken = regexp.MustCompile(`0x([0-9a-f]{2}),`)

// parseCArray reads the byte values back out of a generated array body.
func parseCArray(t *testing.T, src string) []byte {
	t.Helper()
	var out []byte
	for _, m := range hexToken.FindAllStringSubmatch(src, -1) {
		v, err := strconv.ParseUint(m[1], 16, 8)
		if err != nil {
			t.Fatalf("parse %q: %v", m[0], err)
		}
		out = append(out, byte(v))
	}
	return out
}

func TestWriteCArray_SixteenZeros(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCArray(&buf, "gImage_test", make([]byte, 16)); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	want := "const unsigned char gImage_test[16] = {\n" +
		strings.Repeat("0x00,", 16) + "\n" +
		"};\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if got := parseCArray(t, buf.String()); !bytes.Equal(got, make([]byte, 16)) {
		t.Errorf("roundtrip: got %v", got)
	}
}

func TestWriteCArray_PartialLastLine(t *testing.T) {
	data := make([]byte, 17)
	data[16] = 0xAB
	var buf bytes.Buffer
	if err := WriteCArray(&buf, "img", data); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines: got %d, want 4: %q", len(lines), lines)
	}
	if lines[0] != "const unsigned char img[17] = {" {
		t.Errorf("declaration: got %q", lines[0])
	}
	if lines[2] != "0xab," {
		t.Errorf("last data line: got %q, want %q", lines[2], "0xab,")
	}
	if lines[3] != "};" {
		t.Errorf("closing line: got %q", lines[3])
	}
}

func TestWriteCArray_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCArray(&buf, "empty", nil); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	if want := "const unsigned char empty[0] = {\n};\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteCArray_Roundtrip(t *testing.T) {
	data := make([]byte, 15000)
	rand.New(rand.NewSource(1)).Read(data)

	var buf bytes.Buffer
	if err := WriteCArray(&buf, DefaultArrayName, data); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	out := buf.String()

	if got := parseCArray(t, out); !bytes.Equal(got, data) {
		t.Fatalf("roundtrip mismatch: got %d bytes, want %d", len(got), len(data))
	}
	if n := strings.Count(out, "0x"); n != len(data) {
		t.Errorf("tokens: got %d, want %d", n, len(data))
	}
	for i, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "0x") && strings.Count(line, ",") > hexTokensPerLine {
			t.Errorf("line %d holds %d tokens", i, strings.Count(line, ","))
		}
	}
}

func TestWriteCArray_AllByteValues(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	var buf bytes.Buffer
	if err := WriteCArray(&buf, "all", data); err != nil {
		t.Fatalf("WriteCArray: %v", err)
	}
	for i, m := range hexToken.FindAllString(buf.String(), -1) {
		want := "0x" + strconv.FormatUint(uint64(i)|0x100, 16)[1:] + ","
		if m != want {
			t.Errorf("byte %d: got %q, want %q", i, m, want)
		}
	}
}

func TestWriteCArray_StopsOnWriteError(t *testing.T) {
	data := make([]byte, 100)
	for _, failAt := range []int{1, 2, 5, 8, 9} {
		w := &failingWriter{failAt: failAt}
		err := WriteCArray(w, "x", data)
		if !errors.Is(err, errSinkFull) {
			t.Errorf("failAt=%d: got err %v, want %v", failAt, err, errSinkFull)
		}
		if w.after != 0 {
			t.Errorf("failAt=%d: %d writes after failure", failAt, w.after)
		}
		if got := strings.Count(string(w.data), "0x"); got > (failAt-2)*hexTokensPerLine && failAt > 1 {
			t.Errorf("failAt=%d: %d tokens written past the failure", failAt, got)
		}
	}
}

func TestHeaderEncoder_DefaultName(t *testing.T) {
	f := &testFrame{width: 8, height: 1, packed: []byte{0x0F}, samples: make([]byte, 8)}
	var buf bytes.Buffer
	if err := (&HeaderEncoder{}).Encode(&buf, f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "const unsigned char " + DefaultArrayName + "[1] = {\n0x0f,\n};\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
