package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "PORT", "CATALOG_SOURCE", "CHECKOUT_PROCESSING_DELAY", "CHECKOUT_CONFIRMATION_DELAY", "FREE_DELIVERY_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "fixture", cfg.CatalogSource)
	assert.Equal(t, 2*time.Second, cfg.ProcessingDelay)
	assert.Equal(t, 3*time.Second, cfg.ConfirmationDelay)
	assert.Equal(t, "500", cfg.FreeDeliveryThreshold.String())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "9000")
	t.Setenv("CHECKOUT_PROCESSING_DELAY", "500ms")
	t.Setenv("CHECKOUT_CONFIRMATION_DELAY", "bogus")
	t.Setenv("FREE_DELIVERY_THRESHOLD", "750.50")
	t.Setenv("SMTP_PORT", "2525")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.ProcessingDelay)
	assert.Equal(t, 3*time.Second, cfg.ConfirmationDelay)
	assert.Equal(t, "750.5", cfg.FreeDeliveryThreshold.String())
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestBuildDSN(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432/shop"}
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.BuildDSN())

	cfg = &Config{DBHost: "localhost", DBPort: "5454", DBUser: "postgres", DBPassword: "pw", DBName: "farm_fresh", DBSSLMode: "disable"}
	assert.Contains(t, cfg.BuildDSN(), "localhost:5454/farm_fresh")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}
