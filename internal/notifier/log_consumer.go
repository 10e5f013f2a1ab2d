package notifier

import (
	"context"
	"log/slog"
)

// LogConsumer writes each reservation change to the structured log. It is the
// default consumer; external sinks register alongside it.
type LogConsumer struct {
	logger *slog.Logger
}

func NewLogConsumer(logger *slog.Logger) *LogConsumer {
	return &LogConsumer{logger: logger}
}

func (l *LogConsumer) OnReservationChanged(_ context.Context, ev Event) error {
	l.logger.Info("reservation changed",
		"reservation_id", ev.Reservation.ID,
		"status", ev.Reservation.Status,
		"previous_status", ev.PreviousStatus.String(),
		"date", ev.Reservation.Date,
		"slot", ev.Reservation.Slot,
		"table", ev.Reservation.Table,
	)
	return nil
}
