package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API process reads from the environment.
type Config struct {
	Port string

	DBDriver           string
	DatabaseURL        string
	SQLitePath         string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBAutoMigrate      bool
	DBLogSQL           bool
	DBSlowSQLThreshold time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel  string
	LogFormat string

	BatchStageTransitions     string
	ShipmentStatusTransitions string
	OrderIDMaxAttempts        int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	cfg := Config{
		Port:               stringFromEnv("PORT", "3000"),
		DBDriver:           strings.ToLower(stringFromEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         stringFromEnv("SQLITE_PATH", "warehouse.db"),
		DBMaxOpenConns:     intFromEnv("DB_MAX_OPEN_CONNS", 100),
		DBMaxIdleConns:     intFromEnv("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime:  time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 3600)) * time.Second,
		DBAutoMigrate:      boolFromEnv("DB_AUTO_MIGRATE", true),
		DBLogSQL:           boolFromEnv("DB_LOG_SQL", false),
		DBSlowSQLThreshold: time.Duration(intFromEnv("DB_SLOW_SQL_MS", 1000)) * time.Millisecond,

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intFromEnv("REDIS_DB", 0),
		CacheTTL:      time.Duration(intFromEnv("CACHE_TTL_SECONDS", 60)) * time.Second,

		LogLevel:  stringFromEnv("LOG_LEVEL", "info"),
		LogFormat: stringFromEnv("LOG_FORMAT", "json"),

		BatchStageTransitions:     os.Getenv("BATCH_STAGE_TRANSITIONS"),
		ShipmentStatusTransitions: os.Getenv("SHIPMENT_STATUS_TRANSITIONS"),
		OrderIDMaxAttempts:        intFromEnv("ORDER_ID_MAX_ATTEMPTS", 32),
	}

	if cfg.DatabaseURL == "" && cfg.DBDriver == DriverPostgres {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			stringFromEnv("DB_HOST", "localhost"),
			stringFromEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			stringFromEnv("DB_NAME", "warehouse"),
			stringFromEnv("DB_PORT", "5432"),
		)
	}

	return cfg
}

// CacheEnabled reports whether a Redis address was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddress != ""
}

func stringFromEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
