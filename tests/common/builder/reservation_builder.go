//go:build unit

package builder

import (
	"time"

	domres "table-reserve/internal/domain/reservation"
	"table-reserve/internal/domain/venue"
	reqdto "table-reserve/internal/handler/dto/request"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Date      string
	Slot      string
	Table     int
	PartySize int
	Name      string
	Phone     string
	Email     string
	Note      string
	Now       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		// A Friday, i.e. an operating day.
		Date:      "2026-09-04",
		Slot:      "15-17",
		Table:     2,
		PartySize: 3,
		Name:      "Kim Minsoo",
		Phone:     "+821012345678",
		Email:     "minsoo@example.com",
		Note:      "window seat please",
		Now:       time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	return domres.NewReservation(b.BuildDomainInput(), 500, b.Now)
}

func (b *ReservationBuilder) BuildDomainInput() domres.NewReservationInput {
	return domres.NewReservationInput{
		Date:      b.Date,
		Slot:      venue.SlotID(b.Slot),
		Table:     venue.TableID(b.Table),
		PartySize: b.PartySize,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Note:      b.Note,
	}
}

func (b *ReservationBuilder) BuildCommandInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		Date:      b.Date,
		Slot:      venue.SlotID(b.Slot),
		Table:     venue.TableID(b.Table),
		PartySize: b.PartySize,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Note:      b.Note,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Date:      b.Date,
		Slot:      b.Slot,
		Table:     b.Table,
		PartySize: b.PartySize,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Note:      b.Note,
	}
}

func (b *ReservationBuilder) BuildRequestMap() map[string]any {
	return map[string]any{
		"date":       b.Date,
		"slot":       b.Slot,
		"table":      b.Table,
		"party_size": b.PartySize,
		"name":       b.Name,
		"phone":      b.Phone,
		"email":      b.Email,
		"note":       b.Note,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:               uuid.New(),
		Date:             b.Date,
		Slot:             b.Slot,
		Table:            b.Table,
		PartySize:        b.PartySize,
		CustomerName:     b.Name,
		Phone:            b.Phone,
		Email:            b.Email,
		Note:             b.Note,
		Status:           domres.StatusPendingPayment.String(),
		PaymentStatus:    domres.PaymentPending.String(),
		AmountCents:      int64(b.PartySize) * 500,
		PaymentStartedAt: b.Now,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}
