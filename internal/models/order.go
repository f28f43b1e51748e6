package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Status          string  `gorm:"size:20;default:'pending'" json:"status"`
	DiscountApplied bool    `gorm:"default:false" json:"discount_applied"`
	FinalPrice      float64 `gorm:"not null" json:"final_price"`

	// Delivery address for this order, independent of the user's profile address.
	Address string `gorm:"size:255" json:"address"`

	ScheduledTime time.Time `gorm:"not null" json:"scheduled_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
