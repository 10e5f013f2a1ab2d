package queries

import (
	"context"
	"time"

	"table-reserve/internal/domain/venue"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                uuid.UUID `json:"id"`
	Date              string    `json:"date"`
	Slot              string    `json:"slot"`
	Table             int       `json:"table"`
	PartySize         int       `json:"party_size"`
	CustomerName      string    `json:"customer_name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email,omitempty"`
	Note              string    `json:"note,omitempty"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	AmountCents       int64     `json:"amount_cents"`
	PaymentStartedAt  time.Time `json:"payment_started_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SlotTableAvailability is one cell of the availability grid.
type SlotTableAvailability struct {
	Slot      venue.SlotID  `json:"slot"`
	Table     venue.TableID `json:"table"`
	Available bool          `json:"available"`
	Capacity  int           `json:"capacity"`
}

// OccupiedPair is a (slot, table) taken by an active reservation.
type OccupiedPair struct {
	Slot  venue.SlotID
	Table venue.TableID
}

// PendingPaymentItem is what the reconciler sweeps over.
type PendingPaymentItem struct {
	ID               uuid.UUID
	PaymentStartedAt time.Time
}

// ReservationViewRepo is the read side of the store.
type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindActiveByIdempotencyKey(ctx context.Context, key string) (*ReservationView, error)
	FindOccupiedPairs(ctx context.Context, date string) ([]OccupiedPair, error)
	FindPendingPaymentsBefore(ctx context.Context, cutoff time.Time, limit int32) ([]PendingPaymentItem, error)
}
