package ingest

import (
	"context"
	"time"
)

// Delayer inserts a pause between consecutive archive fetches. The chess.com
// API has informal rate limits; the delay is courtesy, not correctness.
type Delayer interface {
	Wait(ctx context.Context)
}

type sleepDelayer struct {
	d time.Duration
}

// NewSleepDelayer returns a Delayer that sleeps for d, waking early when the
// context is cancelled.
func NewSleepDelayer(d time.Duration) Delayer {
	return sleepDelayer{d: d}
}

func (s sleepDelayer) Wait(ctx context.Context) {
	if s.d <= 0 {
		return
	}
	t := time.NewTimer(s.d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// NoDelay skips the inter-fetch pause. Tests use it to run fast.
type NoDelay struct{}

func (NoDelay) Wait(context.Context) {}
