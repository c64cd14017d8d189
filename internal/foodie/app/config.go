package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SessionSecret []byte // Required: HS256 secret for bearer credentials
	InviteSecret  []byte // Required: HS256 secret for invitation tokens (distinct class)

	Issuer        string        // Optional: issuer claim for tokens (default: foodie)
	AccessTTL     time.Duration // Optional: bearer credential lifetime (default: 60s)
	InviteTTL     time.Duration // Optional: invitation token lifetime (default: 1h)
	DatabaseFile  string        // Optional: path to SQLite database file (default: ./foodie.db)
	PepperFile    string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	AdminEmail    string        // Optional: seed platform admin email (created at startup when set)
	AdminPassword string        // Optional: seed platform admin password

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SessionSecret: []byte(os.Getenv("FOODIE_SESSION_SECRET")),
		InviteSecret:  []byte(os.Getenv("FOODIE_INVITE_SECRET")),

		Issuer:        getEnvOrDefault("FOODIE_ISSUER", "foodie"),
		AccessTTL:     getEnvDurationOrDefault("FOODIE_ACCESS_TOKEN_TTL", 60*time.Second),
		InviteTTL:     getEnvDurationOrDefault("FOODIE_INVITE_TTL", time.Hour),
		DatabaseFile:  getEnvOrDefault("FOODIE_DATABASE_FILE", "foodie.db"),
		PepperFile:    getEnvOrDefault("FOODIE_PEPPER_FILE", "pepper"),
		AdminEmail:    os.Getenv("FOODIE_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("FOODIE_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	// Bare integers count as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
