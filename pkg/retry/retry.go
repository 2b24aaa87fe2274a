// ABOUTME: Bounded retry policy with pluggable backoff functions
// ABOUTME: Replaces ad-hoc sleep-in-a-loop retries with one parameterized mechanism

package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// BackoffFunc returns the delay to wait before the given retry.
// attempt is 1-based: Linear and ExponentialJitter receive 1 for the delay
// preceding the first retry.
type BackoffFunc func(attempt int) time.Duration

// Linear returns a backoff that grows as step*attempt, capped at max.
// A max of 0 means no cap.
func Linear(step, max time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		d := step * time.Duration(attempt)
		if max > 0 && d > max {
			return max
		}
		return d
	}
}

// ExponentialJitter returns a backoff of base*2^(attempt-1) capped at max,
// plus a uniformly random delay in [0, jitter).
func ExponentialJitter(base, max, jitter time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
			if max > 0 && d >= max {
				d = max
				break
			}
		}
		if max > 0 && d > max {
			d = max
		}
		if jitter > 0 {
			d += time.Duration(rand.Int63n(int64(jitter)))
		}
		return d
	}
}

// Policy is a bounded retry policy: an operation runs once plus up to
// MaxRetries additional attempts, sleeping Backoff(n) before the nth retry.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first
	MaxRetries int

	// Backoff computes the delay before each retry
	Backoff BackoffFunc
}

// stopError marks an error as permanent so Do returns it without retrying.
type stopError struct {
	err error
}

func (s *stopError) Error() string { return s.err.Error() }

func (s *stopError) Unwrap() error { return s.err }

// Stop wraps an error to signal Do that further retries are pointless.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// Do runs op, retrying on error until the budget is exhausted or the
// context is cancelled. It returns nil on the first success, the unwrapped
// error when op signals Stop, and the last error otherwise.
func (p Policy) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxRetries+1; attempt++ {
		if attempt > 1 {
			delay := time.Duration(0)
			if p.Backoff != nil {
				delay = p.Backoff(attempt - 1)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := op()
		if err == nil {
			return nil
		}

		var stop *stopError
		if errors.As(err, &stop) {
			return stop.err
		}
		lastErr = err
	}

	return lastErr
}
