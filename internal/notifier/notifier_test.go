//go:build unit

package notifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/notifier"
	"table-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingConsumer struct {
	events []notifier.Event
	err    error
	panics bool
}

func (c *recordingConsumer) OnReservationChanged(_ context.Context, ev notifier.Event) error {
	if c.panics {
		panic("consumer exploded")
	}
	c.events = append(c.events, ev)
	return c.err
}

func testEvent() notifier.Event {
	return notifier.Event{
		Reservation: &queries.ReservationView{
			ID:     uuid.New(),
			Status: reservation.StatusConfirmed.String(),
		},
		PreviousStatus: reservation.StatusPendingPayment,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotify(t *testing.T) {
	t.Run("delivers to every consumer in order", func(t *testing.T) {
		first := &recordingConsumer{}
		second := &recordingConsumer{}
		n := notifier.New(discardLogger(), first, second)

		ev := testEvent()
		n.Notify(context.Background(), ev)

		assert.Len(t, first.events, 1)
		assert.Len(t, second.events, 1)
		assert.Equal(t, ev.Reservation.ID, first.events[0].Reservation.ID)
	})

	t.Run("failing consumer does not block the rest", func(t *testing.T) {
		failing := &recordingConsumer{err: errors.New("sink unreachable")}
		healthy := &recordingConsumer{}
		n := notifier.New(discardLogger(), failing, healthy)

		n.Notify(context.Background(), testEvent())

		assert.Len(t, healthy.events, 1)
	})

	t.Run("panicking consumer is contained", func(t *testing.T) {
		panicking := &recordingConsumer{panics: true}
		healthy := &recordingConsumer{}
		n := notifier.New(discardLogger(), panicking, healthy)

		assert.NotPanics(t, func() {
			n.Notify(context.Background(), testEvent())
		})
		assert.Len(t, healthy.events, 1)
	})

	t.Run("register adds consumers after construction", func(t *testing.T) {
		n := notifier.New(discardLogger())
		late := &recordingConsumer{}
		n.Register(late)

		n.Notify(context.Background(), testEvent())
		assert.Len(t, late.events, 1)
	})

	t.Run("no consumers is a no-op", func(t *testing.T) {
		n := notifier.New(discardLogger())
		assert.NotPanics(t, func() {
			n.Notify(context.Background(), testEvent())
		})
	})
}
