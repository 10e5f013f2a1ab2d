package readstore

import (
	"context"
	"errors"
	"time"

	"table-reserve/internal/domain/venue"
	"table-reserve/internal/infra"
	"table-reserve/internal/infra/db"
	"table-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const getByIDSQL = `
SELECT id, reserved_date, slot, table_no, party_size,
       customer_name, phone, email, note,
       status, payment_status, provider_payment_id, amount_cents,
       payment_started_at, created_at, updated_at
FROM reservations
WHERE id = $1`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, getByIDSQL, id)

	var (
		view         queries.ReservationView
		reservedDate time.Time
	)
	err := row.Scan(
		&view.ID, &reservedDate, &view.Slot, &view.Table, &view.PartySize,
		&view.CustomerName, &view.Phone, &view.Email, &view.Note,
		&view.Status, &view.PaymentStatus, &view.ProviderPaymentID, &view.AmountCents,
		&view.PaymentStartedAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.Date = reservedDate.Format("2006-01-02")
	return &view, nil
}

const getActiveByKeySQL = `
SELECT id, reserved_date, slot, table_no, party_size,
       customer_name, phone, email, note,
       status, payment_status, provider_payment_id, amount_cents,
       payment_started_at, created_at, updated_at
FROM reservations
WHERE idempotency_key = $1 AND status IN ('pending_payment', 'confirmed')`

func (r *ReservationReadStore) FindActiveByIdempotencyKey(ctx context.Context, key string) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, getActiveByKeySQL, key)

	var (
		view         queries.ReservationView
		reservedDate time.Time
	)
	err := row.Scan(
		&view.ID, &reservedDate, &view.Slot, &view.Table, &view.PartySize,
		&view.CustomerName, &view.Phone, &view.Email, &view.Note,
		&view.Status, &view.PaymentStatus, &view.ProviderPaymentID, &view.AmountCents,
		&view.PaymentStartedAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no active reservation for idempotency key", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by idempotency key", err)
	}

	view.Date = reservedDate.Format("2006-01-02")
	return &view, nil
}

const occupiedPairsSQL = `
SELECT slot, table_no
FROM reservations
WHERE reserved_date = $1 AND status IN ('pending_payment', 'confirmed')`

// FindOccupiedPairs returns every (slot, table) held by an active reservation
// on the date. All-or-nothing: a scan failure discards partial results.
func (r *ReservationReadStore) FindOccupiedPairs(ctx context.Context, date string) ([]queries.OccupiedPair, error) {
	rows, err := r.db.Query(ctx, occupiedPairsSQL, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied pairs", err)
	}
	defer rows.Close()

	var out []queries.OccupiedPair
	for rows.Next() {
		var (
			slot    string
			tableNo int
		)
		if err := rows.Scan(&slot, &tableNo); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied pair", err)
		}
		out = append(out, queries.OccupiedPair{
			Slot:  venue.SlotID(slot),
			Table: venue.TableID(tableNo),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied pairs", err)
	}
	return out, nil
}

const pendingBeforeSQL = `
SELECT id, payment_started_at
FROM reservations
WHERE status = 'pending_payment'
  AND payment_status = 'pending'
  AND payment_started_at < $1
ORDER BY payment_started_at
LIMIT $2`

func (r *ReservationReadStore) FindPendingPaymentsBefore(ctx context.Context, cutoff time.Time, limit int32) ([]queries.PendingPaymentItem, error) {
	rows, err := r.db.Query(ctx, pendingBeforeSQL, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query stale pending payments", err)
	}
	defer rows.Close()

	var out []queries.PendingPaymentItem
	for rows.Next() {
		var item queries.PendingPaymentItem
		if err := rows.Scan(&item.ID, &item.PaymentStartedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stale pending payment", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stale pending payments", err)
	}
	return out, nil
}

var _ queries.ReservationViewRepo = (*ReservationReadStore)(nil)
