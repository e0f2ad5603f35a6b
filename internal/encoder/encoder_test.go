package encoder

import (
	"errors"
)

// testFrame is a Frame backed by plain slices.
type testFrame struct {
	width, height int
	packed        []byte
	samples       []byte
}

func (f *testFrame) Size() (int, int) { return f.width, f.height }
func (f *testFrame) Bytes() []byte    { return f.packed }
func (f *testFrame) Samples() []byte  { return f.samples }

var errSinkFull = errors.New("sink full")

// failingWriter accepts failAt-1 writes and fails every write from then on.
type failingWriter struct {
	failAt int
	writes int
	after  int // writes attempted after the first failure
	data   []byte
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.failAt {
		w.after++
		return 0, errSinkFull
	}
	if w.writes == w.failAt {
		return 0, errSinkFull
	}
	w.data = append(w.data, p...)
	return len(p), nil
}
