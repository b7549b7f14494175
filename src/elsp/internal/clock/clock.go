// Package clock lets background work pause without tying tests to wall-clock time.
package clock

import (
	"context"
	"time"
)

// Clock pauses work between steps of a long-running task.
type Clock interface {
	// Wait blocks for d or until ctx is done, returning ctx's error in the latter case.
	// A non-positive d only checks ctx.
	Wait(ctx context.Context, d time.Duration) error
}

type clock struct{}

// New returns a Clock backed by real timers.
func New() Clock {
	return clock{}
}

func (clock) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
