package classifier

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Second
)

// Backoff controls the retry schedule of Client. Sleeper is replaceable
// for tests; the default honors context cancellation.
type Backoff struct {
	MaxAttempts int
	Delay       time.Duration
	Sleeper     func(ctx context.Context, d time.Duration) error
}

func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultRetryDelay,
		Sleeper:     sleepContext,
	}
}

func (b Backoff) Sleep(ctx context.Context) error {
	sleeper := b.Sleeper
	if sleeper == nil {
		sleeper = sleepContext
	}
	return sleeper(ctx, b.Delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
