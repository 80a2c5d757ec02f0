package structs

import (
	"context"
	"errors"
	Error "hoa/packages/common/errors"
	"time"
)

// Runs fn and waits for its result at most timeout.
// fn receives a context that is canceled on timeout, but it's up to fn to respect it.
//
// Returns Error.StatusTimeout on timeout and ctx.Err() if parent ctx was canceled.
// If timeout is zero or negative, waits for fn without limit.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}

	// buffered, so fn's goroutine won't leak if nobody waits for it anymore
	done := make(chan result, 1)

	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, Error.StatusTimeout
		}
		return zero, ctx.Err()
	}
}
