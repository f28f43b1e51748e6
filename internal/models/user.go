package models

import "time"

type User struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	RoleID uint `gorm:"not null;default:3" json:"role_id"`
	Role   Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
