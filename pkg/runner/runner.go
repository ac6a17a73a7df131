package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// Runner drives concurrent, multi-file linting over a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New returns a Runner driving pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths, processes them across a worker
// pool, and returns their outcomes in deterministic (discovery) order
// along with aggregate Stats. A non-nil Result is returned even when the
// context is cancelled mid-run; the returned error just flags that it's
// partial.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := r.processAll(ctx, files, opts.Config, pipelineOpts, workerCount(opts.Jobs, len(files)))

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// workerCount picks how many workers to run: jobs if positive, otherwise
// one per CPU, but never more than there are files to process.
func workerCount(jobs, fileCount int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > fileCount {
		jobs = fileCount
	}
	return jobs
}

// processAll fans files out across workerN workers and collects every
// FileOutcome keyed by path, so the caller can replay them in discovery
// order regardless of completion order.
func (r *Runner) processAll(
	ctx context.Context,
	files []string,
	cfg *config.Config,
	opts lint.PipelineOptions,
	workerN int,
) map[string]FileOutcome {
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	wg.Add(workerN)
	for range workerN {
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	return outcomes
}

// worker pulls paths from workCh, processes each through the pipeline, and
// reports the outcome on outCh until workCh closes or ctx is cancelled.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
	opts lint.PipelineOptions,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		if pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts); err != nil {
			outcome.Error = err
		} else {
			outcome.Result = pr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
