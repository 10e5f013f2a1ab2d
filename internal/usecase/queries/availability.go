package queries

import (
	"context"

	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/domain/venue"
	"table-reserve/internal/pkg/errs"
)

var ErrInvalidDate = errs.New("invalid date")

// AvailabilityQueries derives the free/occupied grid for a date from the
// active reservations in the store. Read-only.
type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, date string) ([]SlotTableAvailability, error)
	CheckAvailability(ctx context.Context, date string, slot venue.SlotID, table venue.TableID) (bool, error)
}

type availabilityQueriesImpl struct {
	repo ReservationViewRepo
}

func NewAvailabilityQueries(repo ReservationViewRepo) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, date string) ([]SlotTableAvailability, error) {
	parsed, err := reservation.NewDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	operating := venue.IsOperatingDay(parsed.Time())

	occupied := map[OccupiedPair]bool{}
	if operating {
		pairs, err := q.repo.FindOccupiedPairs(ctx, parsed.String())
		if err != nil {
			return nil, errs.Mark(err, errs.ErrStoreFailure)
		}
		for _, p := range pairs {
			occupied[p] = true
		}
	}

	out := make([]SlotTableAvailability, 0, len(venue.Slots())*len(venue.Tables()))
	for _, slot := range venue.Slots() {
		for _, table := range venue.Tables() {
			out = append(out, SlotTableAvailability{
				Slot:      slot,
				Table:     table,
				Available: operating && !occupied[OccupiedPair{Slot: slot, Table: table}],
				Capacity:  venue.CapacityOf(table),
			})
		}
	}
	return out, nil
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, date string, slot venue.SlotID, table venue.TableID) (bool, error) {
	parsed, err := reservation.NewDate(date)
	if err != nil {
		return false, errs.Mark(err, ErrInvalidDate)
	}
	if !venue.IsValidSlot(slot) || !venue.IsValidTable(table) {
		return false, nil
	}
	if !venue.IsOperatingDay(parsed.Time()) {
		return false, nil
	}

	pairs, err := q.repo.FindOccupiedPairs(ctx, parsed.String())
	if err != nil {
		return false, errs.Mark(err, errs.ErrStoreFailure)
	}
	for _, p := range pairs {
		if p.Slot == slot && p.Table == table {
			return false, nil
		}
	}
	return true, nil
}
