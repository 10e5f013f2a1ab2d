package reservation

import (
	"errors"
	"strings"
	"time"

	"table-reserve/internal/domain/venue"

	"github.com/google/uuid"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInvalidStatus     = errors.New("invalid reservation status")
)

// ValidationError carries every constraint violation found in a create
// request, not just the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Payment is the provider-facing sub-record of a reservation. CreatedAt marks
// the start of the payment window the reconciler measures against.
type Payment struct {
	Status            PaymentStatus
	ProviderPaymentID string
	AmountCents       int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HistoryEntry is one row of the append-only transition log.
type HistoryEntry struct {
	Status     Status
	Reason     string
	RecordedAt time.Time
}

type Reservation struct {
	id             uuid.UUID
	date           Date
	slot           venue.SlotID
	table          venue.TableID
	partySize      PartySize
	contact        Contact
	note           Note
	status         Status
	payment        Payment
	history        []HistoryEntry
	idempotencyKey string
	createdAt      time.Time
	updatedAt      time.Time
}

type NewReservationInput struct {
	Date      string
	Slot      venue.SlotID
	Table     venue.TableID
	PartySize int
	Name      string
	Phone     string
	Email     string
	Note      string
}

// NewReservation validates the input against the venue layout and returns the
// entity in pending_payment with its payment window opened at now. All
// violations are reported together.
func NewReservation(in NewReservationInput, pricePerPersonCents int64, now time.Time) (*Reservation, error) {
	var violations []string

	date, err := NewDate(in.Date)
	if err != nil {
		violations = append(violations, err.Error())
	}
	if !venue.IsValidSlot(in.Slot) {
		violations = append(violations, "unknown time slot")
	}
	if !venue.IsValidTable(in.Table) {
		violations = append(violations, "unknown table")
	}
	if err == nil && !venue.IsOperatingDay(date.Time()) {
		violations = append(violations, "venue is closed on the requested day")
	}

	var partySize PartySize
	if venue.IsValidTable(in.Table) {
		partySize, err = NewPartySize(in.PartySize, in.Table)
		if err != nil {
			violations = append(violations, err.Error())
		}
	}

	contact, err := NewContact(in.Name, in.Phone, in.Email)
	if err != nil {
		violations = append(violations, err.Error())
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	r := &Reservation{
		id:        uuid.New(),
		date:      date,
		slot:      in.Slot,
		table:     in.Table,
		partySize: partySize,
		contact:   contact,
		note:      NewNote(in.Note),
		status:    StatusPendingPayment,
		payment: Payment{
			Status:      PaymentPending,
			AmountCents: pricePerPersonCents * int64(partySize.Int()),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		createdAt: now,
		updatedAt: now,
	}
	r.idempotencyKey = DeriveIdempotencyKey(r.date, r.slot, r.table, r.contact)
	r.history = append(r.history, HistoryEntry{
		Status:     StatusPendingPayment,
		Reason:     "reservation created",
		RecordedAt: now,
	})
	return r, nil
}

func Reconstruct(
	id uuid.UUID,
	date Date,
	slot venue.SlotID,
	table venue.TableID,
	partySize PartySize,
	contact Contact,
	note Note,
	status Status,
	payment Payment,
	history []HistoryEntry,
	idempotencyKey string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		date:           date,
		slot:           slot,
		table:          table,
		partySize:      partySize,
		contact:        contact,
		note:           note,
		status:         status,
		payment:        payment,
		history:        history,
		idempotencyKey: idempotencyKey,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// PaymentUpdate carries provider data merged into the payment sub-record
// during a transition.
type PaymentUpdate struct {
	Status            PaymentStatus
	ProviderPaymentID string
	AmountCents       int64
}

// IsNoopTransition reports whether applying target with the given provider
// payment id would change nothing. Used to collapse webhook retries.
func (r *Reservation) IsNoopTransition(target Status, providerPaymentID string) bool {
	if r.status != target {
		return false
	}
	return providerPaymentID == "" || providerPaymentID == r.payment.ProviderPaymentID
}

// Transition applies target, merges the payment update and appends a history
// entry. Legality is checked against the lifecycle table.
func (r *Reservation) Transition(target Status, payment *PaymentUpdate, reason string, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if !CanTransition(r.status, target) {
		return ErrIllegalTransition
	}

	r.status = target
	if payment != nil {
		r.payment.Status = payment.Status
		if payment.ProviderPaymentID != "" {
			r.payment.ProviderPaymentID = payment.ProviderPaymentID
		}
		if payment.AmountCents > 0 {
			r.payment.AmountCents = payment.AmountCents
		}
		r.payment.UpdatedAt = now
	}
	r.history = append(r.history, HistoryEntry{
		Status:     target,
		Reason:     reason,
		RecordedAt: now,
	})
	r.updatedAt = now
	return nil
}

// RenewPaymentWindow restarts the payment window at now plus an optional
// extension. Only a pending reservation is renewable.
func (r *Reservation) RenewPaymentWindow(now time.Time, extra time.Duration) bool {
	if r.status != StatusPendingPayment || r.payment.Status != PaymentPending {
		return false
	}
	r.payment.CreatedAt = now.Add(extra)
	r.payment.UpdatedAt = now
	r.updatedAt = now
	return true
}

// PaymentExpired reports whether the payment window elapsed without approval.
func (r *Reservation) PaymentExpired(now time.Time, window time.Duration) bool {
	if r.status != StatusPendingPayment || r.payment.Status != PaymentPending {
		return false
	}
	return now.After(r.payment.CreatedAt.Add(window))
}

// RemainingPaymentSeconds is clamped to zero.
func (r *Reservation) RemainingPaymentSeconds(now time.Time, window time.Duration) int64 {
	deadline := r.payment.CreatedAt.Add(window)
	remaining := deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) Date() Date              { return r.date }
func (r *Reservation) Slot() venue.SlotID      { return r.slot }
func (r *Reservation) Table() venue.TableID    { return r.table }
func (r *Reservation) PartySize() PartySize    { return r.partySize }
func (r *Reservation) Contact() Contact        { return r.contact }
func (r *Reservation) Note() Note              { return r.note }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) Payment() Payment        { return r.payment }
func (r *Reservation) IdempotencyKey() string  { return r.idempotencyKey }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }

// History returns a copy; the log is append-only.
func (r *Reservation) History() []HistoryEntry {
	out := make([]HistoryEntry, len(r.history))
	copy(out, r.history)
	return out
}
