package writer

import (
	"bufio"
	"context"
	"io"

	"github.com/dolmen-go/contextio"
	"github.com/zeebo/xxh3"
)

const bufferSize = 1 << 20

// sink buffers lines into the output file and hashes everything it accepts.
// Writes fail with the context error once ctx is done.
type sink struct {
	buf     *bufio.Writer
	w       io.Writer
	hash    *xxh3.Hasher
	scratch []byte
}

func newSink(ctx context.Context, out io.Writer) *sink {
	buf := bufio.NewWriterSize(out, bufferSize)
	hash := xxh3.New()
	return &sink{
		buf:  buf,
		w:    contextio.NewWriter(ctx, io.MultiWriter(buf, hash)),
		hash: hash,
	}
}

// writeLine writes text followed by a newline and returns the bytes written.
func (s *sink) writeLine(text string) (int, error) {
	s.scratch = append(s.scratch[:0], text...)
	s.scratch = append(s.scratch, '\n')
	return s.w.Write(s.scratch)
}

func (s *sink) flush() error {
	return s.buf.Flush()
}

// sum returns the xxh3 digest of every byte accepted so far.
func (s *sink) sum() uint64 {
	return s.hash.Sum64()
}
