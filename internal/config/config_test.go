package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearAmbient pins every variable the assertions depend on so values
// from the surrounding environment cannot leak into the test.
func clearAmbient(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "APP_HOST", "APP_PORT", "APP_VERSION",
		"HTTP_REQUEST_TIMEOUT_SECONDS", "POSTGRES_DSN", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "LOG_LEVEL", "LOG_FORMAT", "AUTH_JWT_ALGORITHM",
		"AUTH_ACCESS_TOKEN_TTL_MINUTES", "AUTH_BCRYPT_COST", "MAIL_FROM",
		"MAIL_WORKER_CONCURRENCY", "STORAGE_PUBLIC_BASE_URL", "CACHE_TTL_SECONDS",
		"POSTGRES_RUN_MIGRATIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearAmbient(t)
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.EqualError(t, err, "AUTH_JWT_SECRET is required")
}

func TestLoadDefaults(t *testing.T) {
	clearAmbient(t)
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "campus-cms-service", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "noreply@campusunion.example", cfg.Mail.From)
	assert.Equal(t, 5, cfg.Mail.Concurrency)
	assert.Equal(t, "http://localhost:9000/cms-media", cfg.Storage.PublicBaseURL)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	clearAmbient(t)
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL())
}

func TestLoadInvalidRedisDB(t *testing.T) {
	clearAmbient(t)
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid REDIS_DB")
}

func TestAppConfigAddr(t *testing.T) {
	cfg := AppConfig{Host: "0.0.0.0", Port: "8080"}
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}

func TestCacheTTLFallback(t *testing.T) {
	assert.Equal(t, 5*time.Minute, CacheConfig{}.TTL())
	assert.Equal(t, 45*time.Second, CacheConfig{TTLSeconds: 45}.TTL())
}
