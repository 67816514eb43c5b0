package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort        string
	DbDriver       string
	SqlitePath     string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	TrustedProxies []string

	JWTSecret       string
	PaymentLink     string
	BillingRequired bool
	PreferencesDir  string
	Timezone        string
	BoardIdleTTL    time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		DbDriver:        parseDriver(getEnv("DB_DRIVER", DriverSQLite)),
		SqlitePath:      getEnv("SQLITE_PATH", "flowstate.db"),
		DbHost:          getEnv("MYSQL_HOST", "db"),
		DbPort:          getEnv("MYSQL_PORT", "3306"),
		DbUser:          getEnv("MYSQL_USER", "flowstate"),
		DbPassword:      getEnv("MYSQL_PASSWORD", "flowstate"),
		DbName:          getEnv("MYSQL_DATABASE", "flowstate"),
		DbParams:        getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:  parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		JWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		PaymentLink:     strings.TrimSpace(os.Getenv("STRIPE_PAYMENT_LINK")),
		BillingRequired: parseBool(os.Getenv("BILLING_REQUIRED"), true),
		PreferencesDir:  getEnv("PREFERENCES_DIR", "data/preferences"),
		Timezone:        getEnv("APP_TIMEZONE", "Local"),
		BoardIdleTTL:    parseDuration(os.Getenv("BOARD_IDLE_TTL"), 10*time.Minute),
	}
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		zap.L().Warn("unknown APP_TIMEZONE, using local time", zap.String("timezone", c.Timezone), zap.Error(err))
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDriver(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case DriverMySQL:
		return DriverMySQL
	default:
		return DriverSQLite
	}
}

func parseBool(value string, fallback bool) bool {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
