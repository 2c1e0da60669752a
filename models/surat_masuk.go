package models

import "time"

// SuratMasuk is a received letter with its scanned attachment.
// Disposition fields are filled in later via partial update.
type SuratMasuk struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	NoSuratMasuk        string     `gorm:"size:128;not null;uniqueIndex" json:"no_surat_masuk"`
	TanggalDiterima     time.Time  `gorm:"not null;index" json:"tanggal_diterima"`
	Pengirim            string     `gorm:"size:255;not null" json:"pengirim"`
	Penerima            string     `gorm:"size:255" json:"penerima"`
	Organisasi          string     `gorm:"size:255" json:"organisasi"`
	SifatSurat          string     `gorm:"size:64;index" json:"sifat_surat"`
	ScanSuratURL        string     `gorm:"size:512;not null" json:"scan_surat"`
	TanggalKadaluarsa   *time.Time `json:"expired_data"`
	UserID              string     `gorm:"type:char(36);index;not null" json:"user_id"`
	User                User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DiteruskanKepada    string     `gorm:"size:255" json:"diteruskan_kepada"`
	TanggalPenyelesaian *time.Time `json:"tanggal_penyelesaian"`
	IsiDisposisi        string     `gorm:"type:text" json:"isi_disposisi"`
}

func (SuratMasuk) TableName() string {
	return "surat_masuk"
}
