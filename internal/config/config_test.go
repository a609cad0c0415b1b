package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BUSINESS_TIMEZONE", "")
	t.Setenv("REPORT_MONTHS", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	assert.Equal(t, 6, cfg.ReportMonths)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotNil(t, cfg.Location)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)

	t.Setenv("JWT_SECRET", "short")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadFallbacks(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus")
	t.Setenv("REPORT_MONTHS", "500")
	t.Setenv("TOKEN_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 6, cfg.ReportMonths)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	joined := strings.Join(cfg.Warnings, "\n")
	assert.Contains(t, joined, "BUSINESS_TIMEZONE")
	assert.Contains(t, joined, "REPORT_MONTHS")
	assert.Contains(t, joined, "TOKEN_TTL")
}

func TestCORSOriginList(t *testing.T) {
	cfg := &Config{CORSOrigins: "https://a.example, https://b.example ,,"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOriginList())
}
