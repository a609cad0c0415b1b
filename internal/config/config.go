package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/drizz21/car-rent-new/internal/clock"

	"github.com/joho/godotenv"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=rental port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
	defaultTimezone    = "Asia/Jakarta"
)

type Config struct {
	HTTPPort     string
	DatabaseDSN  string
	JWTSecret    string
	CORSOrigins  string
	Env          string
	Timezone     string
	Location     *time.Location
	ReportMonths int
	TokenTTL     time.Duration

	// Warnings collects insecure or fallback settings; main logs them once
	// the logger exists.
	Warnings []string
}

var ErrMissingSecret = errors.New("JWT_SECRET belum diset")

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	envFileErr := godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		Env:         getEnv("APP_ENV", "dev"),
		Timezone:    getEnv("BUSINESS_TIMEZONE", defaultTimezone),
	}
	if envFileErr != nil {
		cfg.warn(".env tidak ditemukan, memakai environment sistem")
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET minimal 32 karakter, sekarang %d", len(cfg.JWTSecret))
	}

	loc, err := clock.LoadLocation(cfg.Timezone)
	if err != nil {
		cfg.warn(fmt.Sprintf("BUSINESS_TIMEZONE %q tidak dikenal, memakai UTC", cfg.Timezone))
	}
	cfg.Location = loc

	cfg.ReportMonths = getEnvInt("REPORT_MONTHS", 6)
	if cfg.ReportMonths < 1 || cfg.ReportMonths > 60 {
		cfg.warn(fmt.Sprintf("REPORT_MONTHS %d di luar 1..60, memakai 6", cfg.ReportMonths))
		cfg.ReportMonths = 6
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		cfg.warn("TOKEN_TTL tidak valid, memakai 24h")
		ttl = 24 * time.Hour
	}
	cfg.TokenTTL = ttl

	if cfg.DatabaseDSN == defaultDSN {
		cfg.warn("DATABASE_DSN memakai nilai default, set koneksi Postgres sendiri untuk production")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.warn("CORS_ALLOWED_ORIGINS memakai nilai default, set domain sendiri untuk production")
	}

	return cfg, nil
}

// CORSOriginList splits the comma separated origin list.
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
