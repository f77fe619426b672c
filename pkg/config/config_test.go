package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "REDIS_ADDRESS", "CACHE_TTL_SECONDS", "ORDER_ID_MAX_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseURL, "dbname=warehouse")
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 32, cfg.OrderIDMaxAttempts)
	assert.True(t, cfg.DBAutoMigrate)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "/tmp/w.db")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "/tmp/w.db", cfg.SQLitePath)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.DBAutoMigrate)
	assert.Equal(t, 100, cfg.DBMaxOpenConns)
}
