package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Faktur is an expense invoice with a proof-of-payment attachment.
// Nominal is stored in whole rupiah.
type Faktur struct {
	ID                 string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Deskripsi          string    `gorm:"size:512;not null" json:"deskripsi"`
	Nominal            int64     `gorm:"not null" json:"nominal"`
	MetodePembayaran   string    `gorm:"size:64" json:"metode_pembayaran"`
	StatusPembayaran   string    `gorm:"size:64;index" json:"status_pembayaran"`
	BuktiPembayaranURL string    `gorm:"size:512;not null" json:"bukti_pembayaran"`
	CreatedBy          string    `gorm:"size:64" json:"created_by"`
	UpdatedBy          string    `gorm:"size:64" json:"updated_by"`
	UserID             string    `gorm:"type:char(36);index;not null" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (f *Faktur) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return
}
