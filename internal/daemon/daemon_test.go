package daemon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRawBackoffMonotonicToCap(t *testing.T) {
	assert.Equal(t, 1*time.Second, rawBackoff(1))
	assert.Equal(t, 2*time.Second, rawBackoff(2))
	assert.Equal(t, 4*time.Second, rawBackoff(3))
	assert.Equal(t, 64*time.Second, rawBackoff(7))
	assert.Equal(t, 2*time.Minute, rawBackoff(8))
	assert.Equal(t, 2*time.Minute, rawBackoff(40))

	prev := time.Duration(0)
	for attempt := 1; attempt <= 20; attempt++ {
		d := rawBackoff(attempt)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestCalcBackoffJitterBounds(t *testing.T) {
	for _, attempt := range []int{1, 3, 8, 40} {
		raw := rawBackoff(attempt)
		for i := 0; i < 50; i++ {
			got := calcBackoff(attempt)
			assert.GreaterOrEqual(t, got, time.Duration(float64(raw)*0.8), "attempt %d", attempt)
			assert.LessOrEqual(t, got, time.Duration(float64(raw)*1.2), "attempt %d", attempt)
		}
	}
}

func TestRunExecutesImmediatelyAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, zap.NewNop(), time.Hour, func(context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle did not run immediately")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

func TestRunRestartsIntervalAfterRecovery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const interval = 300 * time.Millisecond

	var mu sync.Mutex
	var calls []time.Time
	go func() {
		_ = Run(ctx, zap.NewNop(), interval, func(context.Context) error {
			mu.Lock()
			calls = append(calls, time.Now())
			n := len(calls)
			mu.Unlock()
			switch {
			case n == 1:
				// Force a backoff window (~1s) longer than the
				// interval, so a tick queues up while we wait.
				return errors.New("probe offline")
			case n >= 3:
				cancel()
			}
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) >= 3
	}, 10*time.Second, 20*time.Millisecond)

	mu.Lock()
	gap := calls[2].Sub(calls[1])
	mu.Unlock()

	// The cycle after recovery must wait a fresh interval, not fire
	// off the tick that accumulated during the backoff.
	assert.GreaterOrEqual(t, gap, interval*2/3)
}

func TestRunRetriesFailedCycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan int, 4)
	n := 0
	go func() {
		_ = Run(ctx, zap.NewNop(), time.Hour, func(context.Context) error {
			n++
			calls <- n
			if n < 2 {
				return errors.New("probe offline")
			}
			cancel()
			return nil
		})
	}()

	// The second call arrives via backoff (~1s), far sooner than the
	// 1h interval.
	require.Eventually(t, func() bool { return len(calls) >= 2 }, 5*time.Second, 50*time.Millisecond)
}
