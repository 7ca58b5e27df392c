package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for session tokens (default: buildmat)

	NumKeys      int           // Optional: number of signing keys to generate (default: 3, min: 1, max: 10)
	DatabaseFile string        // Path to SQLite database file (default: ./buildmat.db)
	PepperFile   string        // Path to file containing pepper for password hashing (default: ./pepper)
	SessionTTL   time.Duration // Session token lifetime (default: 24h)
	ChallengeTTL time.Duration // Emailed login code lifetime (default: 30m)
	ResetTTL     time.Duration // Password reset token lifetime (default: 30m)
	ResetBaseURL string        // Base URL for emailed reset links

	SMTPHost     string // Mail relay host (default: localhost)
	SMTPPort     int    // Mail relay port (default: 25)
	SMTPUsername string // Optional: relay auth username
	SMTPPassword string // Optional: relay auth password
	MailFrom     string // From address on outgoing mail

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:       getEnvOrDefault("BUILDMAT_ISSUER", "buildmat"),
		DatabaseFile: getEnvOrDefault("BUILDMAT_DATABASE_FILE", "buildmat.db"),
		PepperFile:   getEnvOrDefault("BUILDMAT_PEPPER_FILE", "pepper"),
		SessionTTL:   getEnvDurationOrDefault("BUILDMAT_SESSION_TTL", 24*time.Hour),
		ChallengeTTL: getEnvDurationOrDefault("BUILDMAT_CHALLENGE_TTL", 30*time.Minute),
		ResetTTL:     getEnvDurationOrDefault("BUILDMAT_RESET_TTL", 30*time.Minute),
		ResetBaseURL: getEnvOrDefault("BUILDMAT_RESET_BASE_URL", "http://localhost:8080/reset"),

		SMTPHost:     getEnvOrDefault("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 25),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@buildmat.local"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if numKeysStr := os.Getenv("BUILDMAT_NUM_KEYS"); numKeysStr != "" {
		if numKeys, err := strconv.Atoi(numKeysStr); err == nil {
			cfg.NumKeys = numKeys
		}
		// If parsing fails, NumKeys remains 0 (will use default in KeyManager)
	}

	return cfg
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
