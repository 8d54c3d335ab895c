package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile         string        // Path to SQLite database file (default: ./leagueauth.db)
	PepperFile           string        // Path to the password-hashing pepper file (default: ./pepper)
	AdminToken           string        // Optional: token gating the invite mint endpoint; empty disables it
	SessionTTL           time.Duration // Session lifetime (default: 30 days)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads configuration from the environment once at startup.
// Everything downstream receives it explicitly; the services never consult
// env vars themselves.
func LoadConfig() Config {
	return Config{
		DatabaseFile:         getEnvOrDefault("AUTHD_DATABASE_FILE", "leagueauth.db"),
		PepperFile:           getEnvOrDefault("AUTHD_PEPPER_FILE", "pepper"),
		AdminToken:           os.Getenv("AUTHD_ADMIN_TOKEN"),
		SessionTTL:           getEnvDurationOrDefault("AUTHD_SESSION_TTL", 30*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are treated as minutes for convenience.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
