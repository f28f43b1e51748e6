package models

import "time"

type Service struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`

	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"size:500;not null" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	// Free-text interval shown to clients ("30-60 минут"), not machine-parseable.
	Duration string `gorm:"size:50;not null" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
