package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD", "HOUSEKEEPING_INTERVAL",
	"SKILLS_DATABASE_DRIVER", "SKILLS_DATABASE_FILE", "SKILLS_DATABASE_URL", "SKILLS_USERS_FILE",
	"SKILLS_PEPPER_FILE", "SKILLS_SIGNING_KEY_FILE", "SESSION_TTL", "SESSION_COOKIE_SECURE",
	"SKILLS_ENFORCE_OWNERSHIP",
}

// chdir moves into an empty directory so no stray .env is picked up, and
// blanks every config variable for the duration of the test.
func chdir(t *testing.T) string {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "skills.db", cfg.DatabaseFile)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.False(t, cfg.EnforceOwnership)
	require.False(t, cfg.CookieSecure)
	require.Empty(t, cfg.SigningKeyFile)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdir(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HOUSEKEEPING_INTERVAL", "5")
	t.Setenv("SKILLS_ENFORCE_OWNERSHIP", "true")
	t.Setenv("SESSION_COOKIE_SECURE", "1")
	t.Setenv("SKILLS_DATABASE_DRIVER", "Postgres")
	t.Setenv("SKILLS_DATABASE_URL", "postgres://skills@localhost/skills")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
	require.True(t, cfg.EnforceOwnership)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	chdir(t)
	t.Setenv("PORT", "eighty")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("SKILLS_ENFORCE_OWNERSHIP", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.EnforceOwnership)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SKILLS_DATABASE_FILE=from-dotenv.db\nLOG_LEVEL=debug\n"), 0o600))

	// godotenv only fills variables that are absent; chdir's cleanup
	// restores the environment afterwards
	require.NoError(t, os.Unsetenv("SKILLS_DATABASE_FILE"))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv.db", cfg.DatabaseFile)
	require.Equal(t, "warn", cfg.LogLevel, "environment wins over .env")
}

func TestConfigValidate(t *testing.T) {
	chdir(t)

	t.Setenv("SKILLS_DATABASE_DRIVER", "mysql")
	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrUnknownDriver)

	t.Setenv("SKILLS_DATABASE_DRIVER", "postgres")
	_, err = LoadConfig()
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
}
