// Package worker holds the background payment-expiry reconciler.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"
)

const sweepBatchLimit = 200

// Reconciler periodically expires pending-payment reservations whose payment
// window elapsed. It never touches storage directly; every mutation goes
// through the lifecycle engine so the state machine stays the single write
// path.
type Reconciler struct {
	reads    queries.ReservationViewRepo
	commands commands.ReservationCommands
	clock    clock.Clock
	logger   *slog.Logger

	window   time.Duration
	interval time.Duration

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewReconciler(
	reads queries.ReservationViewRepo,
	cmds commands.ReservationCommands,
	clk clock.Clock,
	cfg config.PaymentConfig,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		reads:    reads,
		commands: cmds,
		clock:    clk,
		logger:   logger,
		window:   cfg.ExpiryWindow,
		interval: cfg.ReconcileInterval,
		done:     make(chan struct{}),
	}
}

func (r *Reconciler) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), r.interval)
				r.RunOnce(ctx)
				cancel()
			}
		}
	}()
}

func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
}

// RunOnce performs one sweep. Failures are isolated per item: one reservation
// that cannot be expired does not abort the rest of the batch.
func (r *Reconciler) RunOnce(ctx context.Context) {
	cutoff := r.clock.Now().Add(-r.window)

	items, err := r.reads.FindPendingPaymentsBefore(ctx, cutoff, sweepBatchLimit)
	if err != nil {
		r.logger.Error("payment-expiry sweep query failed", "error", err.Error())
		return
	}
	if len(items) == 0 {
		return
	}

	expired := 0
	for _, item := range items {
		payment := &reservation.PaymentUpdate{Status: reservation.PaymentExpired}
		_, err := r.commands.TransitionReservation(ctx, item.ID, reservation.StatusExpired, payment, "payment window elapsed")
		if err != nil {
			r.logger.Error("failed to expire reservation",
				"reservation_id", item.ID,
				"payment_started_at", item.PaymentStartedAt,
				"error", err.Error())
			continue
		}
		expired++
	}

	r.logger.Info("payment-expiry sweep finished",
		"candidates", len(items),
		"expired", expired)
}
