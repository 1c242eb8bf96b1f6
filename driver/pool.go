package driver

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run discovers cfg.Ext-filtered files under roots, processes them one
// worker per file over a bounded pool, and returns every file's Report once
// all workers complete (spec §5 "parallel threads, one worker per input
// file via a data-parallel work pool"; "no cross-file ordering guarantee;
// reports are gathered and printed after all workers complete").
//
// Run itself never fails on a per-file error — those are captured in the
// returned Reports (spec §7 class 2) — only a fatal discovery or
// output-directory error aborts the run early (spec §7 class 1).
func Run(ctx context.Context, cfg Config, roots []string) ([]Report, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	files, err := Discover(roots, cfg.Ext)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			reports[i] = ProcessFile(cfg, f)
			return nil
		})
	}
	// errgroup.Wait only returns an error from a Go func that returns one;
	// per-file failures are carried in reports[i].Err instead, so Wait here
	// only blocks until every worker has finished.
	_ = g.Wait()

	return reports, nil
}
