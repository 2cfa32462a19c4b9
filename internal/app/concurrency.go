package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel runs fns concurrently and returns their results in order, or the first error.
// The context passed to each fn is canceled as soon as one of them fails.
func Parallel[T any](ctx context.Context, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			result, err := fn(ctx)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel read failed: %w", err)
	}

	return results, nil
}

// Parallel3 runs three differently typed reads concurrently.
func Parallel3[T1, T2, T3 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
	fn3 func(context.Context) (T3, error),
) (result1 T1, result2 T2, result3 T3, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (fnErr error) {
		result1, fnErr = fn1(ctx)
		return fnErr
	})

	g.Go(func() (fnErr error) {
		result2, fnErr = fn2(ctx)
		return fnErr
	})

	g.Go(func() (fnErr error) {
		result3, fnErr = fn3(ctx)
		return fnErr
	})

	if err = g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
			zero3 T3
		)

		return zero1, zero2, zero3, fmt.Errorf("parallel read failed: %w", err)
	}

	return result1, result2, result3, nil
}
