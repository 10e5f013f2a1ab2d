//go:build unit

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-reserve/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func fastConfig() retry.Config {
	return retry.Config{MaxRetries: 3, BaseDelay: time.Millisecond}
}

func TestDo(t *testing.T) {
	t.Run("succeeds first try without retrying", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			return nil
		}, func(error) bool { return true })

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures until success", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		}, func(err error) bool { return errors.Is(err, errTransient) })

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := retry.Do(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			return errTransient
		}, func(error) bool { return true })

		require.ErrorIs(t, err, errTransient)
		assert.Equal(t, 4, calls, "initial attempt plus three retries")
	})

	t.Run("deterministic errors are not retried", func(t *testing.T) {
		permanent := errors.New("unique constraint")
		calls := 0
		err := retry.Do(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			return permanent
		}, func(err error) bool { return errors.Is(err, errTransient) })

		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := retry.Do(ctx, retry.Config{MaxRetries: 5, BaseDelay: 50 * time.Millisecond}, func(context.Context) error {
			calls++
			cancel()
			return errTransient
		}, func(error) bool { return true })

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < 4; attempt++ {
		expected := time.Duration(1<<attempt) * base
		got := retry.Backoff(attempt, base)
		assert.GreaterOrEqual(t, got, expected, "attempt %d", attempt)
		assert.Less(t, got, expected+expected/5+time.Millisecond, "attempt %d jitter bound", attempt)
	}
}
