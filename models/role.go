package models

import "time"

// Role is a master table; users reference it by id.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Nama      string    `gorm:"size:32;uniqueIndex;not null" json:"nama"`
}
