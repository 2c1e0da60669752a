package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notulen is a meeting-minutes record with an optional attached document.
type Notulen struct {
	ID                 string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Judul              string    `gorm:"size:255;not null;index" json:"judul"`
	TanggalRapat       time.Time `gorm:"not null;index" json:"tanggal_rapat"`
	Lokasi             string    `gorm:"size:255" json:"lokasi"`
	PemimpinRapat      string    `gorm:"size:255" json:"pemimpin_rapat"`
	Peserta            string    `gorm:"type:text" json:"peserta"`
	Agenda             string    `gorm:"type:text" json:"agenda"`
	DokumenLampiranURL string    `gorm:"size:512" json:"dokumen_lampiran"`
	Status             string    `gorm:"size:64;index" json:"status"`
	CreatedBy          string    `gorm:"size:64" json:"created_by"`
	UpdatedBy          string    `gorm:"size:64" json:"updated_by"`
	UserID             string    `gorm:"type:char(36);index;not null" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (n *Notulen) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return
}
