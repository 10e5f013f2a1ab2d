package shared

import (
	"context"
	"time"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork scopes durable-store work. Within opens a read-committed
// transaction with bounded retry on transient failures and guarantees
// rollback on every non-commit exit path.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

// ReservationRepository is the single write path into the reservation
// collection. Nothing else mutates it.
type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error
	AppendHistory(ctx context.Context, dbtx db.DBTX, id uuid.UUID, entry reservation.HistoryEntry) error
	// FindActiveIDByIdempotencyKey dedupes retried create requests against
	// still-active reservations only; a cancelled or expired one does not
	// block a fresh booking of the same triple by the same customer.
	FindActiveIDByIdempotencyKey(ctx context.Context, dbtx db.DBTX, key string) (uuid.UUID, bool, error)
	CountActiveByTriple(ctx context.Context, dbtx db.DBTX, date string, slot string, tableNo int) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
