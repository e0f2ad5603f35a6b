package encoder

import (
	"bytes"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func encodePPM(t *testing.T, width, height int, samples []byte) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WritePPM(&buf, width, height, samples); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	return buf.String()
}

func TestWritePPM_TwoPixels(t *testing.T) {
	got := encodePPM(t, 2, 1, []byte{0, 255})
	want := "P3\n2 1\n255\n255 255 255 0 0 0\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWritePPM_RowBreaks(t *testing.T) {
	got := encodePPM(t, 2, 2, []byte{0, 0, 255, 128})
	want := "P3\n2 2\n255\n" +
		"255 255 255 255 255 255\n" +
		"0 0 0 127 127 127\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWritePPM_SingleColumn(t *testing.T) {
	got := encodePPM(t, 1, 3, []byte{255, 255, 255})
	want := "P3\n1 3\n255\n0 0 0\n0 0 0\n0 0 0\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWritePPM_LineBudget(t *testing.T) {
	// "255 255 255" is 11 chars: five fit in 59 chars, a sixth would need 71.
	samples := make([]byte, 12)
	body := ppmBody(t, encodePPM(t, len(samples), 1, samples))

	lines := strings.Split(strings.TrimSuffix(body, "\n\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want 3: %q", len(lines), lines)
	}
	if len(lines[0]) != 59 {
		t.Errorf("first line length: got %d, want 59", len(lines[0]))
	}
	if got := len(strings.Fields(lines[2])); got != 6 {
		t.Errorf("last line fields: got %d, want 6", got)
	}
}

func TestWritePPM_EmptyBuffer(t *testing.T) {
	got := encodePPM(t, 0, 0, nil)
	if want := "P3\n0 0\n255\n\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWritePPM_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := [][2]int{{1, 1}, {3, 5}, {5, 3}, {37, 11}, {400, 3}, {64, 64}}

	for _, sz := range sizes {
		width, height := sz[0], sz[1]
		samples := make([]byte, width*height)
		rng.Read(samples)

		out := encodePPM(t, width, height, samples)
		header := "P3\n" + strconv.Itoa(width) + " " + strconv.Itoa(height) + "\n255\n"
		if !strings.HasPrefix(out, header) {
			t.Fatalf("%dx%d: header: got %q", width, height, out[:min(len(out), 20)])
		}
		if !strings.HasSuffix(out, "\n\n") {
			t.Errorf("%dx%d: missing blank terminating line", width, height)
		}

		body := strings.TrimSuffix(strings.TrimPrefix(out, header), "\n\n")
		idx := 0
		for n, line := range strings.Split(body, "\n") {
			if len(line) > ppmMaxLineLen {
				t.Errorf("%dx%d: line %d has %d chars", width, height, n, len(line))
			}
			fields := strings.Fields(line)
			if len(fields)%3 != 0 {
				t.Fatalf("%dx%d: line %d splits a triplet: %q", width, height, n, line)
			}
			for i := 0; i < len(fields); i += 3 {
				if i > 0 && idx%width == 0 {
					t.Errorf("%dx%d: sample %d starts a row mid-line", width, height, idx)
				}
				want := strconv.Itoa(255 - int(samples[idx]))
				for _, f := range fields[i : i+3] {
					if f != want {
						t.Fatalf("%dx%d: sample %d: got %q, want %q", width, height, idx, f, want)
					}
				}
				idx++
			}
		}
		if idx != len(samples) {
			t.Errorf("%dx%d: triplets: got %d, want %d", width, height, idx, len(samples))
		}
	}
}

func TestWritePPM_StopsOnWriteError(t *testing.T) {
	samples := bytes.Repeat([]byte{0x80}, 100)
	for _, failAt := range []int{1, 3, 8, 9, 20, 150} {
		w := &failingWriter{failAt: failAt}
		err := WritePPM(w, 10, 10, samples)
		if !errors.Is(err, errSinkFull) {
			t.Errorf("failAt=%d: got err %v, want %v", failAt, err, errSinkFull)
		}
		if w.after != 0 {
			t.Errorf("failAt=%d: %d writes after failure", failAt, w.after)
		}
	}
}

func TestPPMEncoder_UsesFrameSamples(t *testing.T) {
	f := &testFrame{width: 2, height: 1, packed: []byte{0xC0}, samples: []byte{0xFF, 0x00}}
	var buf bytes.Buffer
	if err := (&PPMEncoder{}).Encode(&buf, f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := "P3\n2 1\n255\n0 0 0 255 255 255\n\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPixelToken_NoAllocs(t *testing.T) {
	var tok pixelToken
	allocs := testing.AllocsPerRun(100, func() {
		tok.set(42)
	})
	if allocs != 0 {
		t.Errorf("allocs: got %v, want 0", allocs)
	}
	if got := string(tok.bytes()); got != "213 213 213" {
		t.Errorf("token: got %q", got)
	}
}

func TestLinePredicates(t *testing.T) {
	if exceedsLineBudget(58, 11) {
		t.Error("58+1+11 = 70 should fit")
	}
	if !exceedsLineBudget(59, 11) {
		t.Error("59+1+11 = 71 should not fit")
	}
	if startsRow(0, 4) {
		t.Error("sample 0 never starts a new row")
	}
	if !startsRow(8, 4) {
		t.Error("sample 8 of width 4 starts a row")
	}
	if startsRow(5, 0) {
		t.Error("zero width never breaks rows")
	}
}

func ppmBody(t *testing.T, out string) string {
	t.Helper()
	parts := strings.SplitN(out, "\n", 4)
	if len(parts) != 4 {
		t.Fatalf("short output: %q", out)
	}
	return parts[3]
}
