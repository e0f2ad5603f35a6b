package encoder

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// DefaultBufferSize is the write buffer used for file output, so a file
// is written in large chunks instead of one syscall per token.
const DefaultBufferSize = 1 << 20

// WriteFile encodes f into the file at path through a buffered writer of
// bufSize bytes. The file is flushed and closed on every return path.
func WriteFile(path string, enc Encoder, f Frame, bufSize int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	w := bufio.NewWriterSize(file, bufSize)

	if err := enc.Encode(w, f); err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
