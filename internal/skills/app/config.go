package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: ./skills.db)
	DatabaseURL    string // Postgres connection string, required for the postgres driver

	UsersFile      string // Optional: JSON users file, built-in users when empty
	PepperFile     string // Password pepper file (default: ./pepper)
	SigningKeyFile string // Optional: Ed25519 PEM key for session cookies, ephemeral when empty

	SessionTTL       time.Duration // Session lifetime (default: 12h)
	CookieSecure     bool          // Mark the session cookie Secure (default: false)
	EnforceOwnership bool          // Restrict edit/delete to the record owner (default: false)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already
// set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("SKILLS_DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("SKILLS_DATABASE_FILE", "skills.db"),
		DatabaseURL:    os.Getenv("SKILLS_DATABASE_URL"),

		UsersFile:      os.Getenv("SKILLS_USERS_FILE"),
		PepperFile:     getEnvOrDefault("SKILLS_PEPPER_FILE", "pepper"),
		SigningKeyFile: os.Getenv("SKILLS_SIGNING_KEY_FILE"),

		SessionTTL:       getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		CookieSecure:     getEnvBoolOrDefault("SESSION_COOKIE_SECURE", false),
		EnforceOwnership: getEnvBoolOrDefault("SKILLS_ENFORCE_OWNERSHIP", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	ErrUnknownDriver      = errors.New("SKILLS_DATABASE_DRIVER must be sqlite or postgres")
	ErrMissingDatabaseURL = errors.New("SKILLS_DATABASE_URL is required for the postgres driver")
)

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return ErrUnknownDriver
	}
	return nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
