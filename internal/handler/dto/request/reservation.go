package request

import (
	"table-reserve/internal/domain/venue"
	"table-reserve/internal/usecase/commands"
)

type CreateReservationRequest struct {
	Date      string `json:"date" binding:"required"`
	Slot      string `json:"slot" binding:"required"`
	Table     int    `json:"table" binding:"required"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email,omitempty"`
	Note      string `json:"note,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		Date:      r.Date,
		Slot:      venue.SlotID(r.Slot),
		Table:     venue.TableID(r.Table),
		PartySize: r.PartySize,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Note:      r.Note,
	}
}

type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RenewPaymentRequest struct {
	ExtraMinutes int `json:"extra_minutes" binding:"min=0,max=60"`
}
