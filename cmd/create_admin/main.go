package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"efilling/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_admin <nomor_identitas> <password>")
		os.Exit(2)
	}
	nomorIdentitas := os.Args[1]
	password := os.Args[2]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// ensure the admin role exists
	var role models.Role
	if err := db.Where("nama = ?", "admin").First(&role).Error; err != nil {
		role = models.Role{Nama: "admin"}
		db.Create(&role)
	}

	var existing models.User
	if err := db.Where("nomor_identitas = ?", nomorIdentitas).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%s)\n", nomorIdentitas, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	rid := role.ID
	user := models.User{
		NomorIdentitas: nomorIdentitas,
		Nama:           "Administrator",
		Password:       hpw,
		RoleID:         &rid,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created admin %s id=%s\n", nomorIdentitas, user.ID)
}
