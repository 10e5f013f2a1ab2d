package repository

import (
	"context"
	"errors"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/domain/venue"
	"table-reserve/internal/infra"
	"table-reserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const insertReservationSQL = `
INSERT INTO reservations (
    id, reserved_date, slot, table_no, party_size,
    customer_name, phone, email, note,
    status, payment_status, provider_payment_id, amount_cents,
    payment_started_at, payment_updated_at,
    idempotency_key, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
)
RETURNING id`

// Create inserts the reservation and its initial history rows. A violation of
// the active-triple unique index comes back as KindDuplicateKey.
func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	pay := res.Payment()

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, insertReservationSQL,
		res.ID(),
		res.Date().Time(),
		res.Slot().String(),
		int(res.Table()),
		res.PartySize().Int(),
		res.Contact().Name(),
		res.Contact().Phone(),
		res.Contact().Email(),
		res.Note().String(),
		res.Status().String(),
		pay.Status.String(),
		pay.ProviderPaymentID,
		pay.AmountCents,
		pay.CreatedAt,
		pay.UpdatedAt,
		res.IdempotencyKey(),
		res.CreatedAt(),
		res.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active reservation already exists for triple", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	for _, entry := range res.History() {
		if err := r.AppendHistory(ctx, dbtx, id, entry); err != nil {
			return uuid.Nil, err
		}
	}

	return id, nil
}

const selectForUpdateSQL = `
SELECT id, reserved_date, slot, table_no, party_size,
       customer_name, phone, email, note,
       status, payment_status, provider_payment_id, amount_cents,
       payment_started_at, payment_updated_at,
       idempotency_key, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE`

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := dbtx.QueryRow(ctx, selectForUpdateSQL, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation for update", err)
	}
	return res, nil
}

const updateStatusSQL = `
UPDATE reservations
SET status = $2,
    payment_status = $3,
    provider_payment_id = $4,
    amount_cents = $5,
    payment_started_at = $6,
    payment_updated_at = $7,
    updated_at = $8
WHERE id = $1`

func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	pay := res.Payment()

	tag, err := dbtx.Exec(ctx, updateStatusSQL,
		res.ID(),
		res.Status().String(),
		pay.Status.String(),
		pay.ProviderPaymentID,
		pay.AmountCents,
		pay.CreatedAt,
		pay.UpdatedAt,
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const insertHistorySQL = `
INSERT INTO reservation_status_history (reservation_id, status, reason, recorded_at)
VALUES ($1, $2, $3, $4)`

func (r *ReservationRepository) AppendHistory(ctx context.Context, dbtx db.DBTX, id uuid.UUID, entry reservation.HistoryEntry) error {
	_, err := dbtx.Exec(ctx, insertHistorySQL, id, entry.Status.String(), entry.Reason, entry.RecordedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to append status history", err)
	}
	return nil
}

const findActiveByKeySQL = `
SELECT id FROM reservations
WHERE idempotency_key = $1 AND status IN ('pending_payment', 'confirmed')`

func (r *ReservationRepository) FindActiveIDByIdempotencyKey(ctx context.Context, dbtx db.DBTX, key string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, findActiveByKeySQL, key).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, infra.WrapRepoErr("failed to look up idempotency key", err)
	}
	return id, true, nil
}

const countActiveByTripleSQL = `
SELECT count(*) FROM reservations
WHERE reserved_date = $1 AND slot = $2 AND table_no = $3
  AND status IN ('pending_payment', 'confirmed')`

func (r *ReservationRepository) CountActiveByTriple(ctx context.Context, dbtx db.DBTX, date string, slot string, tableNo int) (int64, error) {
	var count int64
	err := dbtx.QueryRow(ctx, countActiveByTripleSQL, date, slot, tableNo).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id                uuid.UUID
		reservedDate      time.Time
		slot              string
		tableNo           int
		partySizeVal      int
		customerName      string
		phone             string
		email             string
		note              string
		status            string
		paymentStatus     string
		providerPaymentID string
		amountCents       int64
		paymentStartedAt  time.Time
		paymentUpdatedAt  time.Time
		idempotencyKey    string
		createdAt         time.Time
		updatedAt         time.Time
	)

	if err := row.Scan(
		&id, &reservedDate, &slot, &tableNo, &partySizeVal,
		&customerName, &phone, &email, &note,
		&status, &paymentStatus, &providerPaymentID, &amountCents,
		&paymentStartedAt, &paymentUpdatedAt,
		&idempotencyKey, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	date := reservation.DateOf(reservedDate)
	partySize, err := reservation.NewPartySize(partySizeVal, venue.TableID(tableNo))
	if err != nil {
		return nil, err
	}
	contact, err := reservation.NewContact(customerName, phone, email)
	if err != nil {
		return nil, err
	}

	return reservation.Reconstruct(
		id,
		date,
		venue.SlotID(slot),
		venue.TableID(tableNo),
		partySize,
		contact,
		reservation.NewNote(note),
		reservation.Status(status),
		reservation.Payment{
			Status:            reservation.PaymentStatus(paymentStatus),
			ProviderPaymentID: providerPaymentID,
			AmountCents:       amountCents,
			CreatedAt:         paymentStartedAt,
			UpdatedAt:         paymentUpdatedAt,
		},
		nil, // history is append-only; not loaded for transitions
		idempotencyKey,
		createdAt,
		updatedAt,
	), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
