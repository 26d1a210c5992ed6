// Package retry provides a bounded retry loop with exponential backoff for
// calls to the backing store, the only blocking collaborator of the
// generation pipeline.
package retry

import (
	"context"
	"time"
)

// Config bounds the retry loop
type Config struct {
	Attempts int           // total attempts, minimum 1
	Delay    time.Duration // delay before the second attempt
	MaxDelay time.Duration // backoff ceiling, 0 means no ceiling
}

// DefaultConfig is suited to short persistence calls: 3 attempts, 100ms base
var DefaultConfig = Config{
	Attempts: 3,
	Delay:    100 * time.Millisecond,
	MaxDelay: 2 * time.Second,
}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is done.
// The delay doubles after every failed attempt.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var err error
	delay := cfg.Delay
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= cfg.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
