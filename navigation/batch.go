package navigation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FindAll runs independent requests in parallel over one grid
// Each worker owns a Finder, so scratch is never shared; the grid must not change meanwhile
// Callbacks fire on worker goroutines. Cancellation is checked between requests,
// and results for requests never started stay zero-valued
func FindAll(ctx context.Context, grid *Grid, reqs []PathRequest, workers int, options ...Option) ([]PathResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(len(reqs), 1))

	results := make([]PathResult, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	next := make(chan int)

	eg.Go(func() error {
		defer close(next)
		for i := range reqs {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case next <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			finder := NewFinder(grid, options...)
			for i := range next {
				results[i] = finder.Request(reqs[i])
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
