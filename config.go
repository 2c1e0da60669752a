package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings. Parsed once at startup.
type Config struct {
	AppAddr       string `env:"APP_ADDR" envDefault:":8081"`
	DBDSN         string `env:"DB_DSN"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-insecure-secret-change"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost"`
	MinioPort      int    `env:"MINIO_PORT" envDefault:"9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	OCREnabled bool `env:"OCR_ENABLED" envDefault:"true"`
}

func loadConfig() (Config, error) {
	var c Config
	err := env.Parse(&c)
	return c, err
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
