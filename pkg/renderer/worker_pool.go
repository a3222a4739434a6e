package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// WorkerPool runs the independent tasks of a pipeline stage (one per row or
// one per gather group) with bounded parallelism
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// ForEach runs task for every index in [0, n). It returns once every started
// task has finished; the first failure cancels the tasks not yet started.
func (wp *WorkerPool) ForEach(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(wp.numWorkers))

	var acquireErr error
	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(egCtx, 1); err != nil {
			acquireErr = err
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := task(egCtx, i); err != nil {
				return fmt.Errorf("while running task %d: %w", i, err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	if acquireErr != nil {
		return fmt.Errorf("while acquiring worker slot: %w", acquireErr)
	}
	return ctx.Err()
}
