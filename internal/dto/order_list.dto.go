package dto

import "time"

// OrderRow is one flattened row of the order listing, joined with the
// booked service and, for back-office listings, the requesting user.
type OrderRow struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	ServiceID       uint      `json:"service_id"`
	Status          string    `json:"status"`
	DiscountApplied bool      `json:"discount_applied"`
	FinalPrice      float64   `json:"final_price"`
	Address         string    `json:"address"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	CreatedAt       time.Time `json:"created_at"`

	ServiceTitle       string `json:"service_title"`
	ServiceDescription string `json:"description"`
	Duration           string `json:"duration"`

	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// BusySlot is one non-cancelled booking returned by the busy-times listing.
type BusySlot struct {
	ScheduledTime time.Time `json:"time"`
	ServiceName   string    `json:"serviceName"`
	Duration      string    `json:"duration"`
	Status        string    `json:"status"`
}
