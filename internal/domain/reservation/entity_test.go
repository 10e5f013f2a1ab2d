//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, reservation.StatusPendingPayment, actual.Status())
		assert.Equal(t, reservation.PaymentPending, actual.Payment().Status)
		assert.Equal(t, int64(1500), actual.Payment().AmountCents)
		assert.Equal(t, b.Now, actual.Payment().CreatedAt)
		assert.Equal(t, "+821012345678", actual.Contact().Phone())
		assert.NotEmpty(t, actual.IdempotencyKey())

		history := actual.History()
		require.Len(t, history, 1)
		assert.Equal(t, reservation.StatusPendingPayment, history[0].Status)
		assert.Equal(t, "reservation created", history[0].Reason)
	})

	t.Run("all violations reported together", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Date = "next friday"
			b.Slot = "14-16"
			b.Table = 9
			b.Phone = "12"
		})

		_, err := b.BuildDomain()
		require.Error(t, err)

		var verr *reservation.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 4)
	})

	t.Run("closed day rejected", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Date = "2026-09-07" // Monday
		})

		_, err := b.BuildDomain()
		var verr *reservation.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Violations, "venue is closed on the requested day")
	})

	t.Run("party size against table capacity", func(t *testing.T) {
		cases := []struct {
			name  string
			table int
			size  int
			ok    bool
		}{
			{name: "at capacity", table: 2, size: 4, ok: true},
			{name: "over capacity", table: 2, size: 5, ok: false},
			{name: "largest table at capacity", table: 5, size: 8, ok: true},
			{name: "zero party", table: 2, size: 0, ok: false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
					b.Table = tc.table
					b.PartySize = tc.size
				})
				_, err := b.BuildDomain()
				if tc.ok {
					assert.NoError(t, err)
				} else {
					assert.Error(t, err)
				}
			})
		}
	})

	t.Run("optional email validated when present", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.Email = "" })
		_, err := b.BuildDomain()
		assert.NoError(t, err)

		b = builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.Email = "not-an-email" })
		_, err = b.BuildDomain()
		assert.Error(t, err)
	})
}

func TestIdempotencyKey(t *testing.T) {
	t.Run("deterministic across retries", func(t *testing.T) {
		first, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		second, err := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			// A later retry of the identical request must collide.
			b.Now = b.Now.Add(2 * time.Minute)
		}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, first.IdempotencyKey(), second.IdempotencyKey())
	})

	t.Run("differs when the booking identity differs", func(t *testing.T) {
		base, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		mutations := []func(b *builder.ReservationBuilder){
			func(b *builder.ReservationBuilder) { b.Date = "2026-09-05" },
			func(b *builder.ReservationBuilder) { b.Slot = "17-19" },
			func(b *builder.ReservationBuilder) { b.Table = 3 },
			func(b *builder.ReservationBuilder) { b.Phone = "+821099998888" },
			func(b *builder.ReservationBuilder) { b.Email = "other@example.com" },
		}
		for _, mutate := range mutations {
			other, err := builder.NewReservationBuilder().With(mutate).BuildDomain()
			require.NoError(t, err)
			assert.NotEqual(t, base.IdempotencyKey(), other.IdempotencyKey())
		}
	})
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	newPending := func(t *testing.T) *reservation.Reservation {
		t.Helper()
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		return r
	}

	t.Run("pending to confirmed merges payment data", func(t *testing.T) {
		r := newPending(t)

		err := r.Transition(reservation.StatusConfirmed, &reservation.PaymentUpdate{
			Status:            reservation.PaymentApproved,
			ProviderPaymentID: "pay_123",
			AmountCents:       1500,
		}, "payment approved", now)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		assert.Equal(t, reservation.PaymentApproved, r.Payment().Status)
		assert.Equal(t, "pay_123", r.Payment().ProviderPaymentID)
		assert.Equal(t, now, r.UpdatedAt())

		history := r.History()
		require.Len(t, history, 2)
		assert.Equal(t, reservation.StatusConfirmed, history[1].Status)
		assert.Equal(t, "payment approved", history[1].Reason)
	})

	t.Run("confirmed to cancelled", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Transition(reservation.StatusConfirmed, nil, "paid", now))
		require.NoError(t, r.Transition(reservation.StatusCancelled, &reservation.PaymentUpdate{
			Status: reservation.PaymentRefunded,
		}, "refunded", now))

		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, reservation.PaymentRefunded, r.Payment().Status)
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, terminal := range []reservation.Status{reservation.StatusCancelled, reservation.StatusExpired} {
			r := newPending(t)
			require.NoError(t, r.Transition(terminal, nil, "done", now))

			for _, target := range []reservation.Status{
				reservation.StatusPendingPayment,
				reservation.StatusConfirmed,
				reservation.StatusCancelled,
				reservation.StatusExpired,
			} {
				err := r.Transition(target, nil, "late", now)
				assert.ErrorIs(t, err, reservation.ErrIllegalTransition, "%s -> %s", terminal, target)
			}
		}
	})

	t.Run("invalid target status", func(t *testing.T) {
		r := newPending(t)
		err := r.Transition(reservation.Status("sideways"), nil, "", now)
		assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})

	t.Run("failed transition leaves the entity untouched", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Transition(reservation.StatusExpired, nil, "window elapsed", now))

		before := len(r.History())
		err := r.Transition(reservation.StatusConfirmed, &reservation.PaymentUpdate{
			Status:            reservation.PaymentApproved,
			ProviderPaymentID: "pay_late",
		}, "late approval", now.Add(time.Minute))
		require.ErrorIs(t, err, reservation.ErrIllegalTransition)

		assert.Equal(t, reservation.StatusExpired, r.Status())
		assert.Empty(t, r.Payment().ProviderPaymentID)
		assert.Len(t, r.History(), before)
	})
}

func TestIsNoopTransition(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	r, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	require.NoError(t, r.Transition(reservation.StatusConfirmed, &reservation.PaymentUpdate{
		Status:            reservation.PaymentApproved,
		ProviderPaymentID: "pay_123",
	}, "paid", now))

	assert.True(t, r.IsNoopTransition(reservation.StatusConfirmed, "pay_123"), "webhook retry")
	assert.True(t, r.IsNoopTransition(reservation.StatusConfirmed, ""), "no provider id supplied")
	assert.False(t, r.IsNoopTransition(reservation.StatusCancelled, "pay_123"), "different target")
	assert.False(t, r.IsNoopTransition(reservation.StatusConfirmed, "pay_999"), "different provider id")
}

func TestPaymentWindow(t *testing.T) {
	window := 15 * time.Minute

	build := func(t *testing.T) *reservation.Reservation {
		t.Helper()
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		return r
	}

	t.Run("not expired inside the window", func(t *testing.T) {
		r := build(t)
		start := r.Payment().CreatedAt
		assert.False(t, r.PaymentExpired(start.Add(14*time.Minute), window))
		assert.Equal(t, int64(60), r.RemainingPaymentSeconds(start.Add(14*time.Minute), window))
	})

	t.Run("expired after the window", func(t *testing.T) {
		r := build(t)
		start := r.Payment().CreatedAt
		assert.True(t, r.PaymentExpired(start.Add(16*time.Minute), window))
		assert.Equal(t, int64(0), r.RemainingPaymentSeconds(start.Add(16*time.Minute), window))
	})

	t.Run("confirmed reservation never expires", func(t *testing.T) {
		r := build(t)
		require.NoError(t, r.Transition(reservation.StatusConfirmed, &reservation.PaymentUpdate{
			Status: reservation.PaymentApproved,
		}, "paid", r.Payment().CreatedAt))

		assert.False(t, r.PaymentExpired(r.Payment().CreatedAt.Add(time.Hour), window))
	})

	t.Run("renewal restarts the countdown", func(t *testing.T) {
		r := build(t)
		later := r.Payment().CreatedAt.Add(10 * time.Minute)

		require.True(t, r.RenewPaymentWindow(later, 0))
		assert.Equal(t, later, r.Payment().CreatedAt)
		assert.False(t, r.PaymentExpired(later.Add(14*time.Minute), window))
	})

	t.Run("renewal with extension", func(t *testing.T) {
		r := build(t)
		later := r.Payment().CreatedAt.Add(10 * time.Minute)

		require.True(t, r.RenewPaymentWindow(later, 5*time.Minute))
		assert.Equal(t, later.Add(5*time.Minute), r.Payment().CreatedAt)
	})

	t.Run("only a pending reservation renews", func(t *testing.T) {
		r := build(t)
		require.NoError(t, r.Transition(reservation.StatusConfirmed, &reservation.PaymentUpdate{
			Status: reservation.PaymentApproved,
		}, "paid", r.Payment().CreatedAt))

		assert.False(t, r.RenewPaymentWindow(r.Payment().CreatedAt.Add(time.Minute), 0))
	})
}
