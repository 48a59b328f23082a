package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every index in [0, n) on at most workers goroutines and
// returns the results in index order. The first error cancels the context
// passed to the remaining calls and is returned.
func Map[R any](ctx context.Context, n, workers int, fn func(ctx context.Context, i int) (R, error)) ([]R, error) {
	out := make([]R, n)
	if n == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := fn(gctx, i)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}
