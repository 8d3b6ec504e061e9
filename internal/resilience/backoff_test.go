package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quick removes the backoff sleeps so retry-path tests run instantly.
func quick(attempts int) Backoff {
	return Backoff{Attempts: attempts, Base: time.Microsecond, Cap: time.Microsecond}
}

func TestRunValRetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := RunVal(context.Background(), quick(4), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", MarkRetryable(eris.New("census returned status 503"), 503)
		}
		return "37.75,-100.02", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "37.75,-100.02", got)
	assert.Equal(t, 3, calls)
}

func TestRunValPermanentErrorFailsFast(t *testing.T) {
	calls := 0
	_, err := RunVal(context.Background(), quick(4), func(context.Context) (int, error) {
		calls++
		return 0, eris.New("address has no match")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "permanent errors must not be retried")
}

func TestRunValExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := RunVal(context.Background(), quick(3), func(context.Context) (int, error) {
		calls++
		return 0, MarkRetryable(eris.Errorf("portal outage, call %d", calls), 502)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "call 3", "last error wins")
	assert.Equal(t, 3, calls)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := quick(5).Run(ctx, func(context.Context) error {
		calls++
		cancel()
		return MarkRetryable(eris.New("portal shed load"), 503)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRunValNotifiesBeforeEachRetry(t *testing.T) {
	b := quick(3)
	var notified []int
	b.Notify = func(attempt int, err error) {
		require.Error(t, err)
		notified = append(notified, attempt)
	}

	_, _ = RunVal(context.Background(), b, func(context.Context) (int, error) {
		return 0, MarkRetryable(eris.New("portal outage"), 500)
	})

	assert.Equal(t, []int{1, 2}, notified)
}

func TestRunValCustomClassifier(t *testing.T) {
	b := quick(3)
	b.Classify = func(err error) bool { return false }

	calls := 0
	_, err := RunVal(context.Background(), b, func(context.Context) (int, error) {
		calls++
		return 0, MarkRetryable(eris.New("would normally retry"), 503)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDelayDoublesAndCaps(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Cap: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, b.delay(1))
	assert.Equal(t, 200*time.Millisecond, b.delay(2))
	assert.Equal(t, 400*time.Millisecond, b.delay(3))
	assert.Equal(t, 500*time.Millisecond, b.delay(4), "delay is capped")
	assert.Equal(t, 500*time.Millisecond, b.delay(10))
}

func TestDelayJitterBounds(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Cap: time.Second, Jitter: 0.5}

	for range 50 {
		d := b.delay(1)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestDefaultsApplied(t *testing.T) {
	b := Backoff{}.withDefaults()
	def := DefaultBackoff()

	assert.Equal(t, def.Attempts, b.Attempts)
	assert.Equal(t, def.Base, b.Base)
	assert.Equal(t, def.Cap, b.Cap)
}
