package revoice

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one invoice is generated at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent browser instances to limit memory (~200MB each).
	MaxWorkers = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// Job is one invoice of a batch.
type Job struct {
	Data    InvoiceData
	Options Options
}

// BatchResult is the outcome of one Job.
type BatchResult struct {
	Index  int // position of the job in the batch
	Result *Result
	Err    error
}

// ResolveWorkers determines the batch parallelism.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// GenerateBatch runs GenerateHTMLInvoice for every job with at most workers
// in flight (0 = automatic). A failing job does not stop the others.
// Results are returned in job order.
func (g *Generator) GenerateBatch(ctx context.Context, jobs []Job, workers int) []BatchResult {
	results := make([]BatchResult, len(jobs))

	eg := new(errgroup.Group)
	eg.SetLimit(ResolveWorkers(workers))

	for i, job := range jobs {
		eg.Go(func() error {
			res, err := g.GenerateHTMLInvoice(ctx, job.Data, job.Options)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
			if err != nil {
				g.logger.Warn("invoice failed", zap.Int("index", i), zap.Error(err))
			}
			return nil
		})
	}

	_ = eg.Wait() // jobs report through results
	return results
}
