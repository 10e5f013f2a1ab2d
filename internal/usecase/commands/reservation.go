package commands

import (
	"context"
	"encoding/json"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/domain/venue"
	"table-reserve/internal/infra"
	"table-reserve/internal/lock"
	"table-reserve/internal/notifier"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/usecase/queries"
	"table-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	Date      string
	Slot      venue.SlotID
	Table     venue.TableID
	PartySize int
	Name      string
	Phone     string
	Email     string
	Note      string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

// ReservationCommands is the lifecycle engine: the only two write paths into
// the reservation collection, plus the payment-window renewal.
type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	TransitionReservation(ctx context.Context, id uuid.UUID, target reservation.Status, payment *reservation.PaymentUpdate, reason string) (*queries.ReservationView, error)
	RenewPaymentWindow(ctx context.Context, id uuid.UUID, extra time.Duration) (bool, error)
}

type reservationCommandsImpl struct {
	uow          shared.UnitOfWork
	locks        *lock.Registry
	availability queries.AvailabilityQueries
	reservations queries.ReservationQueries
	notifier     *notifier.Notifier
	clock        clock.Clock
	payment      config.PaymentConfig
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locks *lock.Registry,
	availability queries.AvailabilityQueries,
	reservations queries.ReservationQueries,
	changeNotifier *notifier.Notifier,
	clk clock.Clock,
	paymentCfg config.PaymentConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:          uow,
		locks:        locks,
		availability: availability,
		reservations: reservations,
		notifier:     changeNotifier,
		clock:        clk,
		payment:      paymentCfg,
	}
}

// CreateReservation validates, takes the in-process table lock, then performs
// the atomic create. The lock is advisory; the re-check inside the
// transaction and the store's unique index are what actually guarantee
// exclusion across instances.
func (c *reservationCommandsImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	entity, err := reservation.NewReservation(reservation.NewReservationInput{
		Date:      in.Date,
		Slot:      in.Slot,
		Table:     in.Table,
		PartySize: in.PartySize,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Note:      in.Note,
	}, c.payment.PricePerPerson, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	// A retried identical request replays the live reservation instead of
	// bouncing off the occupied triple.
	if existing, err := c.reservations.FindActiveByIdempotencyKey(ctx, entity.IdempotencyKey()); err != nil {
		return nil, err
	} else if existing != nil {
		return &CreateReservationResult{Reservation: existing, IsReplayed: true}, nil
	}

	// Fast, friendly rejection before any lock or transaction. The in-tx
	// re-check below still decides for real.
	free, err := c.availability.CheckAvailability(ctx, entity.Date().String(), entity.Slot(), entity.Table())
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, errs.ErrSlotUnavailable
	}

	lockReq := lock.Request{
		OwnerID: entity.ID(),
		Table:   entity.Table(),
		Date:    entity.Date().String(),
		Slot:    entity.Slot(),
	}
	acquired, err := c.locks.Acquire(lockReq)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errs.ErrLockHeld
	}

	var (
		createdID  uuid.UUID
		replayedID uuid.UUID
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()

		// Retried identical request: hand back the live reservation.
		if existingID, found, err := repo.FindActiveIDByIdempotencyKey(ctx, tx.DB(), entity.IdempotencyKey()); err != nil {
			return errs.Mark(err, errs.ErrStoreFailure)
		} else if found {
			replayedID = existingID
			return nil
		}

		// Re-check inside the transaction: the in-process lock cannot see
		// other instances.
		count, err := repo.CountActiveByTriple(ctx, tx.DB(), entity.Date().String(), entity.Slot().String(), int(entity.Table()))
		if err != nil {
			return errs.Mark(err, errs.ErrStoreFailure)
		}
		if count > 0 {
			return errs.ErrSlotUnavailable
		}

		id, err := repo.Create(ctx, tx.DB(), entity)
		if err != nil {
			// The unique index is the final authority; losing the race here
			// is a normal outcome, not a storage failure.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrSlotUnavailable
			}
			return errs.Mark(err, errs.ErrStoreFailure)
		}
		createdID = id

		return c.enqueueChangeJob(ctx, tx, id, "reservation_created")
	})
	if err != nil {
		c.locks.Release(lockReq)
		return nil, err
	}

	if replayedID != uuid.Nil {
		c.locks.Release(lockReq)
		view, err := c.reservations.GetByID(ctx, replayedID)
		if err != nil {
			return nil, err
		}
		return &CreateReservationResult{Reservation: view, IsReplayed: true}, nil
	}

	// Success: the lock stays until TTL or an explicit release on a later
	// terminal transition.
	view, err := c.reservations.GetByID(ctx, createdID)
	if err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, notifier.Event{
		Reservation:    view,
		PreviousStatus: "",
	})

	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// TransitionReservation applies a guarded state change. A repeat of an
// already-applied transition (same target, same provider payment id) is a
// no-op success: no history row, no notification.
func (c *reservationCommandsImpl) TransitionReservation(
	ctx context.Context,
	id uuid.UUID,
	target reservation.Status,
	payment *reservation.PaymentUpdate,
	reason string,
) (*queries.ReservationView, error) {
	var (
		previous reservation.Status
		noop     bool
		released lock.Request
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()

		entity, err := repo.FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReservationNotFound)
			}
			return errs.Mark(err, errs.ErrStoreFailure)
		}

		providerPaymentID := ""
		if payment != nil {
			providerPaymentID = payment.ProviderPaymentID
		}
		if entity.IsNoopTransition(target, providerPaymentID) {
			noop = true
			return nil
		}

		previous = entity.Status()
		now := c.clock.Now()
		if err := entity.Transition(target, payment, reason, now); err != nil {
			return errs.Mark(err, errs.ErrIllegalTransition)
		}

		if err := repo.UpdateStatus(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, errs.ErrStoreFailure)
		}

		history := entity.History()
		if err := repo.AppendHistory(ctx, tx.DB(), id, history[len(history)-1]); err != nil {
			return errs.Mark(err, errs.ErrStoreFailure)
		}

		if target.IsTerminal() {
			released = lock.Request{
				OwnerID: entity.ID(),
				Table:   entity.Table(),
				Date:    entity.Date().String(),
				Slot:    entity.Slot(),
			}
		}

		return c.enqueueChangeJob(ctx, tx, id, "reservation_"+target.String())
	})
	if err != nil {
		return nil, err
	}

	view, err := c.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if noop {
		return view, nil
	}

	// A terminal reservation no longer occupies its triple; free the
	// in-process lock so new attempts skip the LockHeld detour.
	if released.OwnerID != uuid.Nil {
		c.locks.Release(released)
	}

	c.notifier.Notify(ctx, notifier.Event{
		Reservation:    view,
		PreviousStatus: previous,
	})

	return view, nil
}

// RenewPaymentWindow restarts the payment countdown. Returns false without
// mutation when the reservation is missing or no longer renewable.
func (c *reservationCommandsImpl) RenewPaymentWindow(ctx context.Context, id uuid.UUID, extra time.Duration) (bool, error) {
	renewed := false

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()

		entity, err := repo.FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, errs.ErrStoreFailure)
		}

		if !entity.RenewPaymentWindow(c.clock.Now(), extra) {
			return nil
		}

		if err := repo.UpdateStatus(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, errs.ErrStoreFailure)
		}
		renewed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return renewed, nil
}

func (c *reservationCommandsImpl) enqueueChangeJob(ctx context.Context, tx shared.Tx, id uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": id,
		"topic":          topic,
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification payload")
	}

	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "sync", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrStoreFailure)
	}
	return nil
}
