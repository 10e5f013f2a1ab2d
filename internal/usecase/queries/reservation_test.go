//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-reserve/internal/infra"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationQueries(repo *stubViewRepo, now time.Time) queries.ReservationQueries {
	cfg := config.PaymentConfig{ExpiryWindow: 15 * time.Minute}
	return queries.NewReservationQueries(repo, clock.NewMockClock(now), cfg)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		repo := &stubViewRepo{view: &queries.ReservationView{ID: id}}
		q := newReservationQueries(repo, now)

		view, err := q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
	})

	t.Run("not found is marked", func(t *testing.T) {
		repo := &stubViewRepo{viewErr: infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)}
		q := newReservationQueries(repo, now)

		_, err := q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("store failure is marked", func(t *testing.T) {
		repo := &stubViewRepo{viewErr: infra.WrapRepoErr("query failed", errors.New("broken pipe"))}
		q := newReservationQueries(repo, now)

		_, err := q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrStoreFailure)
	})
}

func TestFindActiveByIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("absent key returns nil without error", func(t *testing.T) {
		repo := &stubViewRepo{viewErr: infra.WrapRepoErr("no active reservation", errors.New("no rows"), infra.KindNotFound)}
		q := newReservationQueries(repo, now)

		view, err := q.FindActiveByIdempotencyKey(ctx, "abc123")
		require.NoError(t, err)
		assert.Nil(t, view)
	})

	t.Run("present key returns the live reservation", func(t *testing.T) {
		id := uuid.New()
		repo := &stubViewRepo{view: &queries.ReservationView{ID: id}}
		q := newReservationQueries(repo, now)

		view, err := q.FindActiveByIdempotencyKey(ctx, "abc123")
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, id, view.ID)
	})
}

func TestPaymentWindowQueries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()

	t.Run("inside the window", func(t *testing.T) {
		repo := &stubViewRepo{view: &queries.ReservationView{
			ID:               id,
			Status:           "pending_payment",
			PaymentStatus:    "pending",
			PaymentStartedAt: now.Add(-10 * time.Minute),
		}}
		q := newReservationQueries(repo, now)

		expired, err := q.IsPaymentExpired(ctx, id)
		require.NoError(t, err)
		assert.False(t, expired)

		remaining, err := q.RemainingPaymentSeconds(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(300), remaining)

		window, err := q.GetPaymentWindow(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, window.ReservationID)
		assert.False(t, window.Expired)
		assert.Equal(t, int64(300), window.RemainingSeconds)
	})

	t.Run("past the window", func(t *testing.T) {
		repo := &stubViewRepo{view: &queries.ReservationView{
			ID:               id,
			Status:           "pending_payment",
			PaymentStatus:    "pending",
			PaymentStartedAt: now.Add(-16 * time.Minute),
		}}
		q := newReservationQueries(repo, now)

		expired, err := q.IsPaymentExpired(ctx, id)
		require.NoError(t, err)
		assert.True(t, expired)

		remaining, err := q.RemainingPaymentSeconds(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining, "remaining time is clamped")
	})
}
