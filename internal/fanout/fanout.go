// * Package fanout runs independent operations concurrently and joins them
// * behind a single all-or-nothing barrier.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// * Task is one independent operation of a batch.
type Task[T any] func(ctx context.Context) (T, error)

// * AllOf starts every task at once and waits for all of them. Results are
// * returned in task order. The first failure fails the whole batch: the
// * context passed to the remaining tasks is cancelled and whatever they
// * return is discarded.
func AllOf[T any](ctx context.Context, tasks []Task[T]) ([]T, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]T, len(tasks))

	for i, task := range tasks {
		g.Go(func() error {
			v, err := task(gctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// * Map applies fn to every item concurrently with AllOf semantics.
func Map[I, O any](ctx context.Context, items []I, fn func(ctx context.Context, item I) (O, error)) ([]O, error) {
	tasks := make([]Task[O], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) (O, error) {
			return fn(ctx, item)
		}
	}
	return AllOf(ctx, tasks)
}
