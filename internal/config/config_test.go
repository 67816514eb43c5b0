package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("BILLING_REQUIRED", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("BOARD_IDLE_TTL", "")

	conf := LoadConfig()

	assert.Equal(t, DriverSQLite, conf.DbDriver)
	assert.True(t, conf.BillingRequired)
	assert.Nil(t, conf.TrustedProxies)
	assert.Equal(t, 10*time.Minute, conf.BoardIdleTTL)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("BILLING_REQUIRED", "false")
	t.Setenv("STRIPE_PAYMENT_LINK", "  https://buy.example.com/x ")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("BOARD_IDLE_TTL", "90s")

	conf := LoadConfig()

	assert.Equal(t, "9090", conf.AppPort)
	assert.Equal(t, DriverMySQL, conf.DbDriver)
	assert.False(t, conf.BillingRequired)
	assert.Equal(t, "https://buy.example.com/x", conf.PaymentLink)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, conf.TrustedProxies)
	assert.Equal(t, "s3cret", conf.JWTSecret)
	assert.Equal(t, 90*time.Second, conf.BoardIdleTTL)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("0", true))
	assert.True(t, parseBool("yes-please", true))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5m", time.Minute))
	assert.Equal(t, 30*time.Second, parseDuration(" 30s ", time.Minute))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, (&Config{Timezone: "Local"}).Location())
	assert.Equal(t, time.Local, (&Config{Timezone: "Mars/Olympus"}).Location())
	assert.Equal(t, "UTC", (&Config{Timezone: "UTC"}).Location().String())
}
