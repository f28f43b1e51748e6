package models

import "time"

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255;not null" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

// Seed ids. Authorization short-circuits on 1 and 2 before falling back
// to name matching, so these must stay stable across deployments.
const (
	RoleIDAdmin    uint = 1
	RoleIDEmployee uint = 2
	RoleIDGuest    uint = 3
)
