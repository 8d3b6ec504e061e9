package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrOpen is returned while a breaker is refusing calls.
var ErrOpen = eris.New("resilience: upstream unavailable")

// Breaker is a minimal circuit breaker. threshold consecutive failures trip
// it; after cooldown a trial call is admitted, and its outcome decides
// whether the breaker closes or trips again. The geocoder wraps every Census
// call in one so a portal outage fails fast instead of burning the full
// retry budget per address.
type Breaker struct {
	threshold int
	cooldown  time.Duration
	clock     func() time.Time

	mu       sync.Mutex
	failures int
	tripped  bool
	openedAt time.Time
}

// NewBreaker creates a breaker that trips after threshold consecutive
// failures and admits a trial call after cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		clock:     time.Now,
	}
}

// Call runs fn unless the breaker is refusing calls, and records the outcome.
func (b *Breaker) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn(ctx)
	b.observe(err)
	return err
}

// CallVal is Call for operations that return a value.
func CallVal[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := b.admit(); err != nil {
		return zero, err
	}
	val, err := fn(ctx)
	b.observe(err)
	return val, err
}

// Tripped reports whether the breaker is currently refusing calls.
func (b *Breaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped && b.clock().Sub(b.openedAt) < b.cooldown
}

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tripped = false
	b.failures = 0
}

// admit returns ErrOpen while tripped and inside the cooldown window. Once
// the window passes, calls flow again as trials until one succeeds or fails.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tripped && b.clock().Sub(b.openedAt) < b.cooldown {
		return ErrOpen
	}
	return nil
}

func (b *Breaker) observe(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.tripped = false
		b.failures = 0
		return
	}

	b.failures++
	if b.tripped || b.failures >= b.threshold {
		if !b.tripped {
			zap.L().Warn("resilience: breaker tripped",
				zap.Int("consecutive_failures", b.failures),
				zap.Duration("cooldown", b.cooldown),
			)
		}
		b.tripped = true
		b.openedAt = b.clock()
	}
}
