package order

import (
	"time"

	"github.com/ecosept/booking-api/internal/httperr"
)

// ===============================
// Scheduling rules
// ===============================

// ValidateFuture rejects a scheduled time in the past: either an earlier
// calendar day, or an earlier instant on the current day. The exact
// current second is still valid. Comparison uses server wall-clock time;
// the check is not transactional with the insert.
func ValidateFuture(scheduled, now time.Time) error {
	// Clients send zoned timestamps; the calendar-day comparison only
	// makes sense with both instants in the server's zone.
	scheduled = scheduled.In(now.Location())

	schedDay := truncateToDay(scheduled)
	nowDay := truncateToDay(now)

	if schedDay.Before(nowDay) {
		return httperr.ErrBusiness("past_date")
	}

	if schedDay.Equal(nowDay) && scheduled.Before(now) {
		return httperr.ErrBusiness("past_time")
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day used to group busy times for display.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
