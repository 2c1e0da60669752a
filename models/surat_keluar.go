package models

import "time"

// SuratKeluar is a sent letter. It references a generated NomorSurat.
type SuratKeluar struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	NoSuratKeluar string     `gorm:"size:128;not null;uniqueIndex" json:"no_surat_keluar"`
	Tujuan        string     `gorm:"size:255;not null" json:"tujuan"`
	Organisasi    string     `gorm:"size:255" json:"organisasi"`
	TanggalKeluar time.Time  `gorm:"not null;index" json:"tanggal_keluar"`
	SifatSurat    string     `gorm:"size:64;index" json:"sifat_surat"`
	GambarURL     string     `gorm:"size:512;not null" json:"gambar"`
	Keterangan    string     `gorm:"type:text" json:"keterangan"`
	UserID        string     `gorm:"type:char(36);index;not null" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	NomorSuratID  *string    `gorm:"size:128;index" json:"nomor_surat"`
	NomorSurat    *NomorSurat `gorm:"foreignKey:NomorSuratID;references:Nomor" json:"-"`
}

func (SuratKeluar) TableName() string {
	return "surat_keluar"
}
