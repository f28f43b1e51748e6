package order

import (
	"context"

	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/dto"
)

type BusyTimesResult struct {
	BusyTimes []dto.BusySlot            `json:"busy_times"`
	BusyDays  map[string][]dto.BusySlot `json:"busy_days"`
}

type ListBusyTimes struct {
	repo domain.Repository
}

func NewListBusyTimes(repo domain.Repository) *ListBusyTimes {
	return &ListBusyTimes{repo: repo}
}

// Execute lists non-cancelled bookings in range, grouped by calendar day
// for client-side display. Informational only: order creation never
// consults it to reject conflicts.
func (uc *ListBusyTimes) Execute(
	ctx context.Context,
	filter domain.BusyTimesFilter,
) (*BusyTimesResult, error) {

	slots, err := uc.repo.ListBusySlots(ctx, filter)
	if err != nil {
		return nil, err
	}

	days := make(map[string][]dto.BusySlot)
	for _, s := range slots {
		key := domain.DayKey(s.ScheduledTime)
		days[key] = append(days[key], s)
	}

	return &BusyTimesResult{
		BusyTimes: slots,
		BusyDays:  days,
	}, nil
}
