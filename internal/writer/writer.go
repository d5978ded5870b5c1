// Package writer runs the size-bounded generation loop into an output file.
package writer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ksk1130/tsvloggen/internal/hub"
	"github.com/ksk1130/tsvloggen/internal/model"
)

// LineSource produces the line at a given position.
type LineSource interface {
	Generate(index int64) (model.Line, error)
}

// Options controls a single run.
type Options struct {
	Path          string
	TargetBytes   int64
	ProgressEvery int64 // <= 0 disables progress notices
}

// Result reports what a run wrote.
type Result struct {
	Lines    int64
	Bytes    int64
	Checksum uint64 // xxh3-64 of the written bytes
	Elapsed  time.Duration
}

// Run truncates opts.Path and writes lines from src until at least
// opts.TargetBytes bytes were written. Lines are never truncated, so the file
// overshoots the target by less than one line. The file is closed on every
// return path, with every counted line flushed first; after an error the file
// holds exactly res.Bytes bytes.
func Run(ctx context.Context, opts Options, src LineSource, obs hub.Observer) (res Result, err error) {
	start := time.Now()

	f, err := os.Create(opts.Path)
	if err != nil {
		return res, fmt.Errorf("failed to create output file: %w", err)
	}
	s := newSink(ctx, f)
	defer func() {
		// The buffer writes straight to f, so this works after ctx is done.
		if ferr := s.flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush output file: %w", ferr)
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	for res.Bytes < opts.TargetBytes {
		line, gerr := src.Generate(res.Lines)
		if gerr != nil {
			return res, fmt.Errorf("failed to generate line %d: %w", res.Lines+1, gerr)
		}

		n, werr := s.writeLine(line.Text)
		if werr != nil {
			return res, fmt.Errorf("failed to write output file: %w", werr)
		}
		res.Bytes += int64(n)
		res.Lines++

		if obs == nil {
			continue
		}
		obs.OnLine(line, n)
		if opts.ProgressEvery > 0 && res.Lines%opts.ProgressEvery == 0 {
			obs.OnProgress(model.Progress{
				Lines:       res.Lines,
				Bytes:       res.Bytes,
				TargetBytes: opts.TargetBytes,
			})
		}
	}

	res.Checksum = s.sum()
	res.Elapsed = time.Since(start)
	return res, nil
}
