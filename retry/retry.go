// Package retry provides a small, explicit retry policy for bounded
// re-execution of unreliable operations. It exists so the "try a few times,
// then degrade" contract used around non-deterministic reasoning calls is a
// testable value instead of ad hoc loop logic scattered across call sites.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is wrapped into the error returned by Do when every attempt
// has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy describes a bounded retry budget. MaxAttempts is the total number
// of attempts (not re-attempts); values below 1 are treated as 1. Backoff
// maps the 1-indexed attempt that just failed to the delay before the next
// attempt; nil means no delay.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// NoBackoff retries immediately.
func NoBackoff(int) time.Duration { return 0 }

// ConstantBackoff waits the same duration between every attempt.
func ConstantBackoff(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// ExponentialBackoff doubles the base delay after each failed attempt.
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
		}
		return d
	}
}

// Do runs op under the policy until it succeeds, the budget is exhausted, or
// ctx is cancelled. It returns the successful value and the number of
// attempts performed. On exhaustion the zero value is returned together with
// the last error wrapped around ErrExhausted; on cancellation the context
// error is returned. op receives the 1-indexed attempt number.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, int, error) {
	var zero T

	max := p.MaxAttempts
	if max < 1 {
		max = 1
	}

	var lastErr error
	for attempt := 1; attempt <= max; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, attempt - 1, err
		}

		v, err := op(ctx, attempt)
		if err == nil {
			return v, attempt, nil
		}
		lastErr = err

		if attempt == max {
			break
		}
		if err := sleep(ctx, delayFor(p, attempt)); err != nil {
			return zero, attempt, err
		}
	}

	return zero, max, errors.Join(ErrExhausted, lastErr)
}

func delayFor(p Policy, attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

// sleep waits for d unless the context is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
