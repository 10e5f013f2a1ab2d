//go:build unit

package lock_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"table-reserve/internal/lock"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, clk clock.Clock) *lock.Registry {
	t.Helper()
	cfg := config.LockConfig{TTL: 15 * time.Minute, SweepInterval: 5 * time.Minute}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lock.NewRegistry(cfg, clk, logger)
}

func newRequest() lock.Request {
	return lock.Request{
		OwnerID: uuid.New(),
		Table:   2,
		Date:    "2026-09-04",
		Slot:    "15-17",
	}
}

func TestAcquire(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("second acquirer is refused while the lock lives", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		registry := newRegistry(t, clk)

		ok, err := registry.Acquire(newRequest())
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = registry.Acquire(newRequest())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("different triples do not contend", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		registry := newRegistry(t, clk)

		first := newRequest()
		ok, err := registry.Acquire(first)
		require.NoError(t, err)
		require.True(t, ok)

		other := newRequest()
		other.Slot = "17-19"
		ok, err = registry.Acquire(other)
		require.NoError(t, err)
		assert.True(t, ok)

		other = newRequest()
		other.Table = 3
		ok, err = registry.Acquire(other)
		require.NoError(t, err)
		assert.True(t, ok)

		other = newRequest()
		other.Date = "2026-09-05"
		ok, err = registry.Acquire(other)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired lock is evicted on acquire", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		registry := newRegistry(t, clk)

		ok, err := registry.Acquire(newRequest())
		require.NoError(t, err)
		require.True(t, ok)

		clk.Add(16 * time.Minute)

		ok, err = registry.Acquire(newRequest())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("lock held at exactly TTL boundary is expired", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		registry := newRegistry(t, clk)

		ok, err := registry.Acquire(newRequest())
		require.NoError(t, err)
		require.True(t, ok)

		clk.Add(15 * time.Minute)
		assert.False(t, registry.IsLocked(2, "2026-09-04", "15-17"))
	})

	t.Run("malformed request rejected", func(t *testing.T) {
		clk := clock.NewMockClock(base)
		registry := newRegistry(t, clk)

		cases := []func(r *lock.Request){
			func(r *lock.Request) { r.OwnerID = uuid.Nil },
			func(r *lock.Request) { r.Date = "" },
			func(r *lock.Request) { r.Slot = "" },
			func(r *lock.Request) { r.Table = 0 },
		}
		for _, mutate := range cases {
			req := newRequest()
			mutate(&req)
			_, err := registry.Acquire(req)
			assert.ErrorIs(t, err, errs.ErrInvalidLockRequest)
		}
	})
}

func TestAcquire_Concurrent(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	registry := newRegistry(t, clk)

	const goroutines = 50
	var wg sync.WaitGroup
	winners := make(chan uuid.UUID, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := newRequest()
			ok, err := registry.Acquire(req)
			assert.NoError(t, err)
			if ok {
				winners <- req.OwnerID
			}
		}()
	}
	wg.Wait()
	close(winners)

	var count int
	for range winners {
		count++
	}
	assert.Equal(t, 1, count, "exactly one goroutine may win the triple")
}

func TestRelease(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	registry := newRegistry(t, clk)

	req := newRequest()
	ok, err := registry.Acquire(req)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, registry.Release(req))
	assert.False(t, registry.Release(req), "second release finds nothing")

	ok, err = registry.Acquire(newRequest())
	require.NoError(t, err)
	assert.True(t, ok, "released triple is acquirable again")
}

func TestActiveLocksAndSweep(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(base)
	registry := newRegistry(t, clk)

	early := newRequest()
	ok, err := registry.Acquire(early)
	require.NoError(t, err)
	require.True(t, ok)

	clk.Add(10 * time.Minute)

	late := newRequest()
	late.Slot = "17-19"
	ok, err = registry.Acquire(late)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, registry.ActiveLocks(), 2)

	// Ten more minutes: the early lock is past its TTL, the late one is not.
	clk.Add(10 * time.Minute)

	assert.Equal(t, 1, registry.Sweep())

	active := registry.ActiveLocks()
	require.Len(t, active, 1)
	assert.Equal(t, late.OwnerID, active[0].OwnerID)
}

func TestShutdown(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	registry := newRegistry(t, clk)

	ok, err := registry.Acquire(newRequest())
	require.NoError(t, err)
	require.True(t, ok)

	registry.StartSweeper()
	registry.Shutdown()
	registry.Shutdown() // idempotent

	assert.Empty(t, registry.ActiveLocks())
}
