package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff retries an operation with doubling delays. The zero value is
// usable; unset fields take the DefaultBackoff values.
type Backoff struct {
	// Attempts is the total number of tries including the first. Default 3.
	Attempts int

	// Base is the delay before the first retry; each retry doubles it.
	// Default 500ms.
	Base time.Duration

	// Cap bounds any single delay. Default 30s.
	Cap time.Duration

	// Jitter adds up to this fraction of the delay at random, spreading
	// retries from concurrent workers. Default 0.25.
	Jitter float64

	// Classify decides whether an error is worth retrying. Nil means
	// ShouldRetry.
	Classify func(error) bool

	// Notify, if set, is called with the attempt number and error before
	// each retry sleep.
	Notify func(attempt int, err error)
}

// DefaultBackoff suits the Census and EPA endpoints, which recover from load
// shedding within a few seconds.
func DefaultBackoff() Backoff {
	return Backoff{
		Attempts: 3,
		Base:     500 * time.Millisecond,
		Cap:      30 * time.Second,
		Jitter:   0.25,
	}
}

// Run executes fn, retrying retryable failures per the Backoff settings.
// Context cancellation ends the retry loop immediately.
func (b Backoff) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := RunVal(ctx, b, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// RunVal is Run for operations that return a value.
func RunVal[T any](ctx context.Context, b Backoff, fn func(ctx context.Context) (T, error)) (T, error) {
	b = b.withDefaults()
	classify := b.Classify
	if classify == nil {
		classify = ShouldRetry
	}

	var zero T
	for attempt := 1; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		if ctx.Err() != nil || attempt >= b.Attempts || !classify(err) {
			return zero, err
		}

		if b.Notify != nil {
			b.Notify(attempt, err)
		}
		if !sleep(ctx, b.delay(attempt)) {
			return zero, err
		}
	}
}

func (b Backoff) withDefaults() Backoff {
	def := DefaultBackoff()
	if b.Attempts <= 0 {
		b.Attempts = def.Attempts
	}
	if b.Base <= 0 {
		b.Base = def.Base
	}
	if b.Cap <= 0 {
		b.Cap = def.Cap
	}
	if b.Jitter < 0 {
		b.Jitter = 0
	}
	return b
}

// delay computes the sleep before retry number attempt: Base doubled per
// prior retry, capped, plus random jitter.
func (b Backoff) delay(attempt int) time.Duration {
	d := float64(b.Base)
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= float64(b.Cap) {
			break
		}
	}
	if d > float64(b.Cap) {
		d = float64(b.Cap)
	}
	if b.Jitter > 0 {
		d += rand.Float64() * b.Jitter * d
	}
	return time.Duration(d)
}

// sleep waits for d, returning false if the context ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
