package pipeline

import (
	"context"

	"golang.org/x/sync/semaphore"
)

const DefaultWorkers = 4

// WorkerPool bounds the number of decodes and disk cache operations that
// run at the same time.
type WorkerPool struct {
	slots   *semaphore.Weighted
	workers int
}

func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	return &WorkerPool{
		slots:   semaphore.NewWeighted(int64(workers)),
		workers: workers,
	}
}

// Run waits for a free slot and runs fn in it on the calling goroutine.
func (p *WorkerPool) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return asCanceled(ctx, err)
	}
	defer p.slots.Release(1)

	return fn(ctx)
}

func (p *WorkerPool) Workers() int {
	return p.workers
}
