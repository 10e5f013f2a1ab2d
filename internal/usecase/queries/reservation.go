package queries

import (
	"context"
	"time"

	"table-reserve/internal/infra"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// PaymentWindowView is the polling view the UI refreshes while the customer
// is paying.
type PaymentWindowView struct {
	ReservationID    uuid.UUID `json:"reservation_id"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	Expired          bool      `json:"expired"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// FindActiveByIdempotencyKey returns nil when no live reservation
	// carries the key.
	FindActiveByIdempotencyKey(ctx context.Context, key string) (*ReservationView, error)
	IsPaymentExpired(ctx context.Context, id uuid.UUID) (bool, error)
	RemainingPaymentSeconds(ctx context.Context, id uuid.UUID) (int64, error)
	GetPaymentWindow(ctx context.Context, id uuid.UUID) (*PaymentWindowView, error)
}

type reservationQueriesImpl struct {
	repo   ReservationViewRepo
	clock  clock.Clock
	window time.Duration
}

func NewReservationQueries(repo ReservationViewRepo, clk clock.Clock, cfg config.PaymentConfig) ReservationQueries {
	return &reservationQueriesImpl{
		repo:   repo,
		clock:  clk,
		window: cfg.ExpiryWindow,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStoreFailure)
	}
	return view, nil
}

func (q *reservationQueriesImpl) FindActiveByIdempotencyKey(ctx context.Context, key string) (*ReservationView, error) {
	view, err := q.repo.FindActiveByIdempotencyKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrStoreFailure)
	}
	return view, nil
}

func (q *reservationQueriesImpl) IsPaymentExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return q.expired(view), nil
}

func (q *reservationQueriesImpl) RemainingPaymentSeconds(ctx context.Context, id uuid.UUID) (int64, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return q.remaining(view), nil
}

func (q *reservationQueriesImpl) GetPaymentWindow(ctx context.Context, id uuid.UUID) (*PaymentWindowView, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PaymentWindowView{
		ReservationID:    view.ID,
		Status:           view.Status,
		PaymentStatus:    view.PaymentStatus,
		Expired:          q.expired(view),
		RemainingSeconds: q.remaining(view),
	}, nil
}

func (q *reservationQueriesImpl) expired(view *ReservationView) bool {
	return q.clock.Now().After(view.PaymentStartedAt.Add(q.window))
}

func (q *reservationQueriesImpl) remaining(view *ReservationView) int64 {
	remaining := view.PaymentStartedAt.Add(q.window).Sub(q.clock.Now())
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}
