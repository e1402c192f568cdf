// Package chunk plans line-aligned byte ranges over an input file so
// that parallel workers never split a record.
package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Range is a half-open [Start, End) span of the input. End always falls
// just past a line terminator, or at the end of the file.
type Range struct {
	Start, End int64
}

// maxLineLen bounds the lookahead used to snap a boundary to the next
// terminator. No plausible record comes close: values are at most five
// bytes and names are short.
const maxLineLen = 128

// ErrNoTerminator reports a lookahead window with no line terminator,
// which means a record longer than maxLineLen or a truncated file.
var ErrNoTerminator = errors.New("no line terminator within lookahead window")

// Plan splits size bytes into at most workers contiguous ranges of
// roughly equal size. Every interior boundary starts as size/workers and
// is advanced to just past the first '\n' at or beyond it; the final
// range always ends at size.
func Plan(r io.ReaderAt, size int64, workers int) ([]Range, error) {
	if size == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	target := size / int64(workers)
	if target < maxLineLen {
		// Too small to split: a boundary search could overrun the
		// next naive boundary.
		return []Range{{0, size}}, nil
	}

	ranges := make([]Range, 0, workers)
	var window [maxLineLen]byte
	start := int64(0)

	for i := 1; i < workers; i++ {
		naive := start + target
		if naive >= size {
			break
		}

		n, err := r.ReadAt(window[:min(int64(maxLineLen), size-naive)], naive)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read boundary window at %d: %w", naive, err)
		}

		j := bytes.IndexByte(window[:n], '\n')
		if j < 0 {
			if naive+int64(n) == size {
				// The window ran into the end of the file; the
				// final range absorbs the remainder.
				break
			}
			return nil, ErrNoTerminator
		}

		end := naive + int64(j) + 1
		ranges = append(ranges, Range{start, end})
		start = end
	}

	return append(ranges, Range{start, size}), nil
}
