package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an application account. NomorIdentitas is the login key.
type User struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	NomorIdentitas string    `gorm:"size:64;not null;uniqueIndex" json:"nomor_identitas"`
	Nama           string    `gorm:"size:255;not null" json:"nama"`
	Password       []byte    `gorm:"not null" json:"-"`
	RoleID         *uint     `gorm:"index" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID;references:ID" json:"role"`
	Jurusan        string    `gorm:"size:128" json:"jurusan"`
	Angkatan       string    `gorm:"size:16" json:"angkatan"`
	FotoURL        string    `gorm:"size:512" json:"foto_url"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return
}
