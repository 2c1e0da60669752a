package main

import (
	"strings"

	"efilling/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDB() {
	var err error
	if cfg.DBDSN == "" {
		log.Fatal().Msg("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres database")
	}

	// Ensure the roles master table exists first and seed it so the users FK
	// can be applied safely.
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Warn().Err(err).Msg("migration warning (roles)")
		}
	}
	seedRoles()

	if cfg.DBAutoMigrate {
		// Migrate models individually so a failure on one doesn't block the
		// others. Referenced tables (users, nomor_surat) go first so the FK
		// constraints can be applied.
		steps := []struct {
			table string
			model any
		}{
			{"users", &models.User{}},
			{"token_blacklist", &models.TokenBlacklist{}},
			{"nomor_surat", &models.NomorSurat{}},
			{"surat_masuk", &models.SuratMasuk{}},
			{"surat_keluar", &models.SuratKeluar{}},
			{"faktur", &models.Faktur{}},
			{"notulen", &models.Notulen{}},
		}
		for _, s := range steps {
			if err := db.AutoMigrate(s.model); err != nil {
				log.Warn().Err(err).Str("table", s.table).Msg("migration warning")
			}
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{{Nama: "admin"}, {Nama: "asisten"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("nama = ?", r.Nama).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Seed an admin account so a fresh install is usable
	var count int64
	db.Model(&models.User{}).Where("nomor_identitas = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("nama = ?", "admin").First(&role).Error; err != nil {
			log.Warn().Err(err).Msg("failed to find admin role")
		}
		rid := role.ID
		hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := models.User{
			NomorIdentitas: "admin",
			Nama:           "Administrator",
			Password:       hashed,
			RoleID:         &rid,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed admin user")
		} else {
			log.Info().Msg("seeded admin user: nomor_identitas=admin, password=admin123")
		}
	}
}

// isUniqueViolation reports whether err looks like a unique-constraint error
// from Postgres. Used to turn insert races into Conflict responses.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
