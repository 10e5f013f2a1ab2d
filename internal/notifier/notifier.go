// Package notifier is the single extension point the lifecycle engine fires
// after each committed state change. Consumers (spreadsheet sync, messaging)
// register against it; their failures are logged and never reach the caller.
package notifier

import (
	"context"
	"log/slog"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/usecase/queries"
)

type Event struct {
	Reservation *queries.ReservationView
	// PreviousStatus is empty on creation.
	PreviousStatus reservation.Status
}

type Consumer interface {
	OnReservationChanged(ctx context.Context, ev Event) error
}

type Notifier struct {
	consumers []Consumer
	logger    *slog.Logger
}

func New(logger *slog.Logger, consumers ...Consumer) *Notifier {
	return &Notifier{
		consumers: consumers,
		logger:    logger,
	}
}

func (n *Notifier) Register(c Consumer) {
	n.consumers = append(n.consumers, c)
}

// Notify invokes every consumer in order. A failing or panicking consumer is
// logged and skipped; the triggering operation has already committed and must
// not be affected.
func (n *Notifier) Notify(ctx context.Context, ev Event) {
	for _, c := range n.consumers {
		n.deliver(ctx, c, ev)
	}
}

func (n *Notifier) deliver(ctx context.Context, c Consumer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("notifier consumer panicked",
				"reservation_id", ev.Reservation.ID,
				"panic", r)
		}
	}()

	if err := c.OnReservationChanged(ctx, ev); err != nil {
		n.logger.Error("notifier consumer failed",
			"reservation_id", ev.Reservation.ID,
			"status", ev.Reservation.Status,
			"previous_status", ev.PreviousStatus.String(),
			"error", err.Error())
	}
}
