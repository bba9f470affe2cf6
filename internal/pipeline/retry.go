package pipeline

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxEncodeRetries bounds retry attempts for transient encoder failures.
const MaxEncodeRetries = 3

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// withRetry runs fn up to attempts times, backing off between failures.
// Context expiry stops retrying immediately and returns the context error.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for attempt := range attempts {
		err = fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt+1 < attempts {
			select {
			case <-time.After(Backoff(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}
