package main

import (
	"os"

	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	cfg       Config
	db        *gorm.DB
	store     *storage.Client
	jwtSecret []byte
)

func main() {
	// Auto-load ./.env if present before reading vars
	loadDotEnv()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var err error
	cfg, err = loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration")
	}
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./efilling migrate`
	// Runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		log.Info().Msg("migration and seeding completed")
		return
	}

	initDB()

	store, err = storage.New(storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		Port:      cfg.MinioPort,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create storage client")
	}

	r := gin.Default()

	setupRoutes(r)

	if err := r.Run(cfg.AppAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
