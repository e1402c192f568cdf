// Package aggregate runs the parallel scan over planned byte ranges and
// reduces the per-worker tables into one result.
package aggregate

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"onebrc/internal/chunk"
	"onebrc/internal/fingerprint"
	"onebrc/internal/parse"
	"onebrc/internal/stats"
)

// Option configures a run.
type Option func(*config)

type config struct {
	fp fingerprint.Func
}

// WithFingerprint overrides the default FNV-1a fingerprint. All workers
// of a run must use the same function or merging is meaningless.
func WithFingerprint(fp fingerprint.Func) Option {
	return func(c *config) { c.fp = fp }
}

// Run scans every planned range in its own goroutine and folds the
// per-worker tables into one. Each worker owns a private buffer and a
// private table for its whole scan, so the per-line loop takes no locks;
// the only synchronization is the final join. The fold order is
// irrelevant because table merges commute.
//
// The first worker error cancels the group and is returned; no partial
// table escapes.
func Run(ctx context.Context, r io.ReaderAt, plan []chunk.Range, opts ...Option) (*stats.Table, error) {
	cfg := config{fp: fingerprint.FNV64a}
	for _, opt := range opts {
		opt(&cfg)
	}

	locals := make([]*stats.Table, len(plan))
	g, ctx := errgroup.WithContext(ctx)

	for i, rng := range plan {
		i, rng := i, rng
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := scanRange(r, rng, cfg.fp)
			if err != nil {
				return fmt.Errorf("range [%d,%d): %w", rng.Start, rng.End, err)
			}
			locals[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	final := stats.NewTable()
	for _, t := range locals {
		if err := final.Merge(t); err != nil {
			return nil, err
		}
	}
	return final, nil
}

// scanRange reads one byte span with a single positional read and feeds
// every contained line through the parser into a worker-local table.
// Malformed lines are dropped; empty lines (including a trailing blank at
// end of file) are skipped.
func scanRange(r io.ReaderAt, rng chunk.Range, fp fingerprint.Func) (*stats.Table, error) {
	buf := make([]byte, rng.End-rng.Start)

	n, err := r.ReadAt(buf, rng.Start)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read chunk: %w", err)
	}
	if int64(n) != rng.End-rng.Start {
		return nil, fmt.Errorf("short read: %d of %d bytes", n, rng.End-rng.Start)
	}

	table := stats.NewTable()
	for len(buf) > 0 {
		var line []byte
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			line, buf = buf[:i], buf[i+1:]
		} else {
			// Final line without a terminator.
			line, buf = buf, nil
		}
		if len(line) == 0 {
			continue
		}

		rec, err := parse.Line(line, fp)
		if err != nil {
			continue
		}
		if err := table.Upsert(rec.Key, rec.Name, rec.Value); err != nil {
			return nil, err
		}
	}
	return table, nil
}
