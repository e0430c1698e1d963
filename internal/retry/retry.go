package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Policy describes how many times an operation is retried and how long to
// wait before each retry.
type Policy struct {
	MaxRetries         int
	BaseDelay          time.Duration
	ExponentialBackoff bool
	// MaxDelay caps a single wait. Zero means uncapped.
	MaxDelay time.Duration
	Jitter   bool
}

// Delay returns the wait before attempt n, where attempt 0 is the first call.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := p.BaseDelay
	if p.ExponentialBackoff {
		delay = time.Duration(math.Pow(2, float64(attempt-1))) * p.BaseDelay
	}

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	if p.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}

	return delay
}

// Schedule returns the waits preceding every retry of the policy, in order.
func (p Policy) Schedule() []time.Duration {
	delays := make([]time.Duration, 0, p.MaxRetries)
	for attempt := 1; attempt <= p.MaxRetries; attempt++ {
		delays = append(delays, p.Delay(attempt))
	}
	return delays
}

// ExhaustedError is returned once every attempt of a policy failed with a
// retryable error.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// IsRetryable reports whether err, or anything it wraps, asks to be retried.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}

// Result carries the value of the successful attempt and the number of
// attempts made, including the successful one.
type Result[T any] struct {
	Value    T
	Attempts int
}

type SleepFunc func(ctx context.Context, d time.Duration) error

// Dispatcher runs operations under a Policy.
type Dispatcher struct {
	Name  string
	sleep SleepFunc
}

func NewDispatcher(name string) *Dispatcher {
	return &Dispatcher{Name: name, sleep: sleepContext}
}

// WithSleep replaces the wait between attempts, mostly for tests.
func (d *Dispatcher) WithSleep(sleep SleepFunc) *Dispatcher {
	d.sleep = sleep
	return d
}

// Execute calls op until it succeeds, returns a non-retryable error or the
// policy runs out of retries. op receives the 0-indexed attempt number so it
// can re-query remote state before repeating a side effect.
//
// Cancelling ctx interrupts the wait between attempts; an attempt in flight
// is never abandoned by the dispatcher itself.
func Execute[T any](ctx context.Context, d *Dispatcher, policy Policy, op func(ctx context.Context, attempt int) (T, error)) (Result[T], error) {
	var lastErr error
	sleep := d.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.Delay(attempt)
			logrus.WithFields(logrus.Fields{
				"dispatcher": d.Name,
				"attempt":    attempt + 1,
				"delay":      delay,
			}).Warnf("retrying after error: %v", lastErr)

			if err := sleep(ctx, delay); err != nil {
				return Result[T]{Attempts: attempt}, fmt.Errorf("context cancelled during retry after %d attempts (last error: %v): %w", attempt, lastErr, err)
			}
		}

		value, err := op(ctx, attempt)
		if err == nil {
			if attempt > 0 {
				logrus.Infof("[%s] operation succeeded after %d attempts", d.Name, attempt+1)
			}
			return Result[T]{Value: value, Attempts: attempt + 1}, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return Result[T]{Attempts: attempt + 1}, err
		}
	}

	return Result[T]{Attempts: policy.MaxRetries + 1}, &ExhaustedError{
		Attempts: policy.MaxRetries + 1,
		LastErr:  lastErr,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
