package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach calls action for every index in [0, n) using at most workers
// goroutines. Indices are split into contiguous chunks, one per worker, so
// action may write to a slot of a pre-sized slice without locking.
// It returns the first error encountered; remaining chunks stop early once
// the context is cancelled.
func ForEach(ctx context.Context, n, workers int, action func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	errGroup, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		errGroup.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := action(ctx, i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return errGroup.Wait()
}

// ParallelMap applies mapFn to each element of in using at most workers
// goroutines, preserving order.
func ParallelMap[T any, R any](ctx context.Context, in []T, workers int, mapFn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	err := ForEach(ctx, len(in), workers, func(_ context.Context, i int) error {
		out[i] = mapFn(in[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
