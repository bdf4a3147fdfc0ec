package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"vinyasaclub/db"
)

const defaultJWTSecret = "dev-secret-insecure"

type Config struct {
	Port        string
	DBType      db.DBType
	PostgresURL string
	MongoURL    string
	MongoDB     string
	SQLitePath  string

	JWTSecret  string
	SessionTTL time.Duration
	Location   *time.Location
	SeedDemo   bool

	ReportDir string
	R2        R2Config
}

// R2Config holds Cloudflare R2 credentials for report uploads.
type R2Config struct {
	Bucket          string
	AccountID       string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != "" &&
		c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        get("PORT", "8080"),
		DBType:      db.DBType(get("DB_TYPE", string(db.Memory))),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		MongoDB:     get("MONGO_DB", "vinyasaclub"),
		SQLitePath:  get("SQLITE_PATH", "vinyasa.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ReportDir:   get("REPORT_DIR", "./reports"),
		R2: R2Config{
			Bucket:          os.Getenv("R2_BUCKET"),
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		},
	}

	if !cfg.DBType.Valid() {
		return nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
	}
	if cfg.DBType == db.Postgres && cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL not set in environment")
	}
	if cfg.DBType == db.Mongo && cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL not set in environment")
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = defaultJWTSecret
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	loc, err := time.LoadLocation(get("CLUB_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLUB_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	seed, err := strconv.ParseBool(get("SEED_DEMO", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO %q", os.Getenv("SEED_DEMO"))
	}
	cfg.SeedDemo = seed

	return cfg, nil
}
