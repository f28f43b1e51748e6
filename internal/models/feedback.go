package models

import "time"

// Feedback is a rating left by a user, normally tied to one of their
// orders. OrderID 0 marks a general review not linked to any order, so
// there is deliberately no database-level foreign key on it.
type Feedback struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"not null" json:"user_id"`
	OrderID uint `gorm:"index" json:"order_id"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
