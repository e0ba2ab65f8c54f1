// Package clock provides context-aware waits.
package clock

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

var wall = clock.New()

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	_, err := Wait(ctx, wall, d, nil)
	return err
}

// Wait blocks until d elapses on clk, signal fires or ctx is done. woken reports whether
// signal ended the wait. A nil signal never fires.
func Wait(ctx context.Context, clk clock.Clock, d time.Duration, signal <-chan struct{}) (woken bool, err error) {
	timer := clk.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-signal:
		return true, nil
	case <-timer.C:
		return false, nil
	}
}
