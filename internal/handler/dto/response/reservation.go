package response

import (
	"time"

	"table-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID               uuid.UUID `json:"id"`
	Date             string    `json:"date"`
	Slot             string    `json:"slot"`
	Table            int       `json:"table"`
	PartySize        int       `json:"partySize"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email,omitempty"`
	Note             string    `json:"note,omitempty"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	AmountCents      int64     `json:"amountCents"`
	PaymentStartedAt time.Time `json:"paymentStartedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type AvailabilityCell struct {
	Slot      string `json:"slot"`
	Table     int    `json:"table"`
	Available bool   `json:"available"`
	Capacity  int    `json:"capacity"`
}

type AvailabilityResponse struct {
	Date  string             `json:"date"`
	Cells []AvailabilityCell `json:"cells"`
}

type PaymentWindowResponse struct {
	ReservationID    uuid.UUID `json:"reservationId"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	Expired          bool      `json:"expired"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               view.ID,
		Date:             view.Date,
		Slot:             view.Slot,
		Table:            view.Table,
		PartySize:        view.PartySize,
		Name:             view.CustomerName,
		Phone:            view.Phone,
		Email:            view.Email,
		Note:             view.Note,
		Status:           view.Status,
		PaymentStatus:    view.PaymentStatus,
		AmountCents:      view.AmountCents,
		PaymentStartedAt: view.PaymentStartedAt,
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
	}
}

func FromAvailability(date string, cells []queries.SlotTableAvailability) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:  date,
		Cells: make([]AvailabilityCell, len(cells)),
	}
	for i, cell := range cells {
		out.Cells[i] = AvailabilityCell{
			Slot:      cell.Slot.String(),
			Table:     int(cell.Table),
			Available: cell.Available,
			Capacity:  cell.Capacity,
		}
	}
	return out
}

func FromPaymentWindow(view *queries.PaymentWindowView) *PaymentWindowResponse {
	return &PaymentWindowResponse{
		ReservationID:    view.ReservationID,
		Status:           view.Status,
		PaymentStatus:    view.PaymentStatus,
		Expired:          view.Expired,
		RemainingSeconds: view.RemainingSeconds,
	}
}
