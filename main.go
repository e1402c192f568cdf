package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/exp/mmap"

	"onebrc/internal/aggregate"
	"onebrc/internal/chunk"
	"onebrc/internal/fingerprint"
	"onebrc/internal/report"
)

func main() {
	path := flag.String("f", "measurements.txt", "input file")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of parallel workers")
	hash := flag.String("hash", "fnv", "fingerprint function: fnv or xxh3")
	prof := flag.Bool("profile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	try0(run(*path, os.Stdout, *workers, *hash), "aggregate "+*path)
}

// run aggregates the file at path and writes the result line to out. All
// file-level and planning-level failures surface here; nothing partial is
// written on error.
func run(path string, out io.Writer, workers int, hash string) error {
	fp, ok := fingerprint.ByName(hash)
	if !ok {
		return fmt.Errorf("unknown hash %q", hash)
	}

	file, err := mmap.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	plan, err := chunk.Plan(file, int64(file.Len()), workers)
	if err != nil {
		return fmt.Errorf("plan chunks: %w", err)
	}

	table, err := aggregate.Run(context.Background(), file, plan, aggregate.WithFingerprint(fp))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, report.Format(table))
	return err
}

func try0(err error, desc string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to %s: %v\n", desc, err)
		os.Exit(1)
	}
}
