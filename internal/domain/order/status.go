package order

import "github.com/ecosept/booking-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// IsValid reports whether s is one of the four lifecycle values. The
// back-office status endpoint accepts any valid value without walking the
// lifecycle graph; only the self-service cancel path enforces transitions.
func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel gates the owner-facing cancel path: completed and cancelled
// orders are terminal.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
