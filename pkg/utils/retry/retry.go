// Package retry provides a bounded retry loop with a fixed interval and an
// initial grace period, for polling eventually-consistent remote systems.
package retry

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ErrExhausted is returned when every attempt completed without a match.
var ErrExhausted = goerr.New("retry attempts exhausted")

// SleepFunc suspends for the given duration. Implementations must honor
// context cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy controls the retry schedule. Grace is slept once before the first
// attempt; Interval is slept between attempts (not after the last one).
type Policy struct {
	Attempts int
	Interval time.Duration
	Grace    time.Duration

	// Sleep overrides the real clock, for tests. Nil means time.Sleep with
	// context cancellation.
	Sleep SleepFunc
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do invokes fn up to p.Attempts times until it reports a match. fn returns
// (value, true, nil) to stop with success, (zero, false, nil) to keep
// retrying, or a non-nil error to abort immediately.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, bool, error)) (T, error) {
	var zero T

	if err := p.sleep(ctx, p.Grace); err != nil {
		return zero, goerr.Wrap(err, "interrupted before first attempt")
	}

	for i := 0; i < p.Attempts; i++ {
		if i > 0 {
			if err := p.sleep(ctx, p.Interval); err != nil {
				return zero, goerr.Wrap(err, "interrupted between attempts", goerr.V("attempt", i))
			}
		}

		v, found, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		if found {
			return v, nil
		}
	}

	return zero, goerr.Wrap(ErrExhausted, "no match", goerr.V("attempts", p.Attempts))
}
