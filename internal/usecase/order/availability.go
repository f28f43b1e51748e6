package order

import (
	"time"

	"github.com/ecosept/booking-api/internal/clock"
	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/httperr"
)

type AvailabilityResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// CheckAvailability reports whether the requested time is bookable. It is
// purely a past/future check against the server clock; it does not consult
// other orders for conflicts.
func CheckAvailability(scheduled time.Time) AvailabilityResult {
	err := domain.ValidateFuture(scheduled, clock.Now())

	switch {
	case httperr.IsBusiness(err, "past_date"):
		return AvailabilityResult{
			Available: false,
			Message:   "Невозможно создать заказ на прошедшую дату. Пожалуйста, выберите сегодняшний или будущий день.",
		}
	case httperr.IsBusiness(err, "past_time"):
		return AvailabilityResult{
			Available: false,
			Message:   "Невозможно создать заказ на прошедшее время. Пожалуйста, выберите будущее время.",
		}
	}

	return AvailabilityResult{
		Available: true,
		Message:   "Выбранная дата и время доступны для бронирования",
	}
}
