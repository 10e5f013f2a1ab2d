// Package retry holds the single bounded-retry helper shared by every
// external-call site (transaction runner, reconciler). Exponential backoff
// with jitter; the caller decides which errors are worth retrying.
package retry

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"
)

type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
	}
}

// Do runs op up to cfg.MaxRetries+1 times, sleeping a jittered exponential
// backoff between attempts. retryable reports whether a failure should be
// retried; deterministic errors return immediately.
func Do(ctx context.Context, cfg Config, op func(ctx context.Context) error, retryable func(error) bool) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if attempt >= cfg.MaxRetries || !retryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(Backoff(attempt, cfg.BaseDelay)):
		}
	}
}

// Backoff returns base*2^attempt plus up to 20% jitter.
func Backoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to no jitter if crypto/rand fails
		return 0
	}
	v := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	return v % n
}
