// Package lock provides the process-local table lock registry: short-lived
// mutual exclusion over (table, date, slot) that closes the window between an
// availability check and the durable insert within one instance. It is not a
// distributed lock; the store's unique index stays the source of truth.
package lock

import (
	"log/slog"
	"sync"
	"time"

	"table-reserve/internal/domain/venue"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type Key struct {
	Table venue.TableID
	Date  string
	Slot  venue.SlotID
}

type Entry struct {
	Key       Key
	OwnerID   uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Request identifies the reservation attempting to hold a table.
type Request struct {
	OwnerID uuid.UUID
	Table   venue.TableID
	Date    string
	Slot    venue.SlotID
}

func (r Request) key() Key {
	return Key{Table: r.Table, Date: r.Date, Slot: r.Slot}
}

func (r Request) validate() error {
	if r.OwnerID == uuid.Nil || r.Date == "" || r.Slot == "" || r.Table == 0 {
		return errs.ErrInvalidLockRequest
	}
	return nil
}

type Registry struct {
	mu      sync.Mutex
	entries map[Key]Entry

	ttl           time.Duration
	sweepInterval time.Duration
	clock         clock.Clock
	logger        *slog.Logger

	sweepOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewRegistry(cfg config.LockConfig, clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		entries:       make(map[Key]Entry),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		clock:         clk,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// Acquire takes the lock for the request's triple. Returns false when an
// unexpired lock is already held by someone else. An expired entry is evicted
// on the way in.
func (r *Registry) Acquire(req Request) (bool, error) {
	if err := req.validate(); err != nil {
		return false, err
	}

	now := r.clock.Now()
	key := req.key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		if now.Before(existing.ExpiresAt) {
			return false, nil
		}
		delete(r.entries, key)
	}

	r.entries[key] = Entry{
		Key:       key,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	return true, nil
}

// Release drops the lock for the request's triple. A missing entry is not an
// error; the return value reports whether anything was removed.
func (r *Registry) Release(req Request) bool {
	key := req.key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	return true
}

// IsLocked reports whether an unexpired lock exists for the triple, lazily
// evicting an expired one.
func (r *Registry) IsLocked(table venue.TableID, date string, slot venue.SlotID) bool {
	key := Key{Table: table, Date: date, Slot: slot}
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return false
	}
	if !now.Before(entry.ExpiresAt) {
		delete(r.entries, key)
		return false
	}
	return true
}

// ActiveLocks returns all unexpired entries, evicting expired ones as it goes.
func (r *Registry) ActiveLocks() []Entry {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for key, entry := range r.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(r.entries, key)
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Sweep evicts every expired entry and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper launches the periodic eviction loop. Safe to call once; the
// loop stops on Shutdown.
func (r *Registry) StartSweeper() {
	r.sweepOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(r.sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-r.done:
					return
				case <-ticker.C:
					if removed := r.Sweep(); removed > 0 {
						r.logger.Debug("evicted expired table locks", "count", removed)
					}
				}
			}
		}()
	})
}

// Shutdown stops the sweeper and clears all entries. Locks never survive a
// process restart.
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() {
		close(r.done)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Key]Entry)
}
