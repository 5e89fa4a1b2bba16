// Package parallel runs work over a bounded number of goroutines.
package parallel

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
)

var ErrInvalidParallelism = errors.New("degree of parallelism must be > 0")

type Processor func(idx int) error

// ForEach calls process for every index in [0, total)
// with at most n calls running at once,
// and coalesces the errors into a single multierror, in index order.
//
// If callers need process to return data,
// they should allocate a slice and assign to the index while processing,
// or use Map.
func ForEach(total int, n int, process Processor) error {
	if n <= 0 {
		return ErrInvalidParallelism
	}
	semaphore := make(chan struct{}, n)
	errs := make([]error, total)

	wg := sync.WaitGroup{}
	wg.Add(total)
	for i := 0; i < total; i++ {
		semaphore <- struct{}{}
		go func(i int) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			errs[i] = process(i)
		}(i)
	}
	wg.Wait()
	return multierror.Append(nil, errs...).ErrorOrNil()
}

// Map calls fn for every item with at most n calls at once,
// and returns the results in item order.
// Items are skipped once ctx is done; their error is ctx.Err().
func Map[T, R any](ctx context.Context, items []T, n int, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := ForEach(len(items), n, func(idx int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := fn(ctx, items[idx])
		results[idx] = r
		return err
	})
	return results, err
}
