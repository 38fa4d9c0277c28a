package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs one input file with its conversion outcome.
type FileResult struct {
	Input  string
	Result Result
}

// BatchResult reports a directory conversion. Failures are isolated per
// file; one bad document never aborts its siblings.
type BatchResult struct {
	Files []FileResult
}

// Failed counts the files whose conversion did not succeed.
func (b BatchResult) Failed() int {
	n := 0
	for _, f := range b.Files {
		if !f.Result.Success {
			n++
		}
	}
	return n
}

// Batch converts every PDF in dir. Files run independently and in parallel,
// bounded by jobs (default: GOMAXPROCS); each file's conversion owns its own
// document handles, so there is no shared mutable state between them. The
// returned error covers only batch-level problems (unreadable directory, no
// PDFs); per-file failures live in the BatchResult.
func (c *Converter) Batch(ctx context.Context, dir string, jobs int, base Request) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			inputs = append(inputs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		return BatchResult{}, fmt.Errorf("no PDF files in %s", dir)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, input := range inputs {
		g.Go(func() error {
			req := base
			req.InputPath = input
			req.OutputPath = "" // per-file default next to the input
			results[i] = FileResult{Input: input, Result: c.Convert(gctx, req)}
			return nil
		})
	}
	// Workers never return errors; the group exists for bounded parallelism
	// and context propagation.
	if err := g.Wait(); err != nil {
		return BatchResult{Files: results}, err
	}
	return BatchResult{Files: results}, nil
}
