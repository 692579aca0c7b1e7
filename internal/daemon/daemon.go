// Package daemon runs the periodic report generation loop behind watch
// mode and the Windows service.
package daemon

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	baseBackoff = 1 * time.Second
	maxBackoff  = 2 * time.Minute
)

// Cycle generates (and optionally pushes) one full report. The daemon
// treats any returned error as a failed cycle and retries with backoff.
type Cycle func(ctx context.Context) error

// Run executes one cycle immediately, then repeats every interval
// until the context is cancelled. A failed cycle is retried on an
// exponential backoff schedule instead of waiting the full interval.
func Run(ctx context.Context, log *zap.Logger, interval time.Duration, cycle Cycle) error {
	log = log.Named("daemon")
	if interval <= 0 {
		interval = time.Hour
	}

	attempt := 0
	runOnce := func() {
		if err := cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			attempt++
			log.Warn("cycle failed",
				zap.Int("attempt", attempt), zap.Error(err))
		} else {
			attempt = 0
		}
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		var wait <-chan time.Time = ticker.C
		inBackoff := attempt > 0
		if inBackoff {
			backoff := calcBackoff(attempt)
			log.Info("retrying after backoff", zap.Duration("backoff", backoff))
			wait = time.After(backoff)
		}

		select {
		case <-ctx.Done():
			log.Info("watch loop stopped")
			return ctx.Err()
		case <-wait:
			runOnce()
			// A tick that queued up during the backoff window must not
			// fire the next cycle right after recovery; drain it and
			// start a fresh interval.
			if inBackoff && attempt == 0 {
				ticker.Stop()
				select {
				case <-ticker.C:
				default:
				}
				ticker.Reset(interval)
			}
		}
	}
}

// calcBackoff doubles from the base up to the cap, with ±20% jitter so
// restarted fleets do not thunder in step.
func calcBackoff(attempt int) time.Duration {
	jitter := 1 + (rand.Float64()*0.4 - 0.2)
	return time.Duration(float64(rawBackoff(attempt)) * jitter)
}

func rawBackoff(attempt int) time.Duration {
	// 2^7 seconds already exceeds the cap; larger exponents overflow.
	if attempt > 8 {
		return maxBackoff
	}
	d := baseBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}
