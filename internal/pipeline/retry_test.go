package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	t.Run("first attempt success makes one call", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after a transient failure", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), 3, func() error {
			calls++
			if calls < 2 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("cancelled context stops retrying immediately", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := withRetry(ctx, 3, func() error {
			calls++
			cancel()
			return errors.New("failure")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestBackoff(t *testing.T) {
	t.Run("grows with attempt", func(t *testing.T) {
		// Jitter adds at most half the base, so successive bases cannot
		// overlap downward.
		assert.GreaterOrEqual(t, Backoff(0), time.Second)
		assert.Less(t, Backoff(0), 2*time.Second)
		assert.GreaterOrEqual(t, Backoff(1), 2*time.Second)
		assert.Less(t, Backoff(1), 4*time.Second)
	})

	t.Run("caps at thirty seconds base", func(t *testing.T) {
		d := Backoff(10)
		assert.GreaterOrEqual(t, d, 30*time.Second)
		assert.Less(t, d, 60*time.Second)
	})
}
