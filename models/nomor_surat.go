package models

import "time"

// NomorSurat is a generated document reference number. The formatted number
// itself is the primary key; Kategori is derived from Keyword.
type NomorSurat struct {
	Nomor     string    `gorm:"size:128;primaryKey" json:"nomor_surat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Keyword   string    `gorm:"size:100;not null" json:"keyword"`
	Deskripsi string    `gorm:"size:255;not null" json:"deskripsi"`
	Kategori  string    `gorm:"size:128;not null" json:"kategori"`
}

func (NomorSurat) TableName() string {
	return "nomor_surat"
}
