package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Fallback values keep local development working without a .env file.
// They must never be relied on in a production deployment.
const (
	defaultDatabaseHost = "localhost"
	defaultDatabasePort = "5432"
	defaultDatabaseUser = "postgres"
	defaultDatabaseName = "etixdb"
	defaultSecretKey    = "a_very_fallback_secret_key"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDSN() string {
	DATABASE_HOST := getenv("DATABASE_HOST", defaultDatabaseHost)
	DATABASE_PORT := getenv("DATABASE_PORT", defaultDatabasePort)
	DATABASE_USER := getenv("DATABASE_USER", defaultDatabaseUser)
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := getenv("DATABASE_NAME", defaultDatabaseName)
	DATABASE_SSLMODE := getenv("DATABASE_SSLMODE", "disable")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE)
	return dsn
}

// SecretKey signs session tokens.
func SecretKey() []byte {
	return []byte(getenv("SECRET_KEY", defaultSecretKey))
}

// PlatformFeeRate is the platform's cut of an order total. The rate is a
// versioned policy value (it has been 0.05 in earlier deployments), so it is
// read from the environment rather than fixed per call site.
func PlatformFeeRate() float64 {
	raw := os.Getenv("PLATFORM_FEE_RATE")
	if raw == "" {
		return 0.07
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 || rate >= 1 {
		return 0.07
	}
	return rate
}

// PlatformFeeCents truncates to whole cents.
func PlatformFeeCents(amountCents int64) int64 {
	return int64(math.Floor(float64(amountCents) * PlatformFeeRate()))
}

const (
	TIME_PARSE_FORMAT     = "2006-01-02 15:04:05 -07:00"
	TIME_PARSE_FORMAT_ALT = "2006-01-02T15:04"
)

// DEFAULT_EVENT_DURATION derives ends_at when the form omits it.
const DEFAULT_EVENT_DURATION_HOURS = 2
