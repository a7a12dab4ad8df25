package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// releaseConcurrency caps the number of simultaneous release lookups during
// an index rebuild.
const releaseConcurrency = 5

// mapWithLimit applies fn to every item with at most limit concurrent
// workers, preserving input order in the result regardless of completion
// order. The first error cancels the group and fails the whole operation.
func mapWithLimit[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			r, err := fn(ctx, item)
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
	return out, nil
}
