package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageSQLite   StorageBackend = "sqlite"
	StoragePostgres StorageBackend = "postgres"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port   string
	AppEnv string

	Storage     StorageBackend
	DatabaseURL string
	SQLitePath  string
	DBMaxConns  int32

	// SlowQueryThreshold is the duration above which search statements are logged at warn level.
	SlowQueryThreshold time.Duration
	ShutdownTimeout    time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "8080"),
		AppEnv:             getenv("APP_ENV", "development"),
		Storage:            StorageBackend(getenv("STORAGE_BACKEND", string(StorageMemory))),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         getenv("SQLITE_PATH", "file:members.db"),
		SlowQueryThreshold: 50 * time.Millisecond,
		ShutdownTimeout:    10 * time.Second,
	}

	switch cfg.Storage {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("missing required env var for postgres storage: DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be one of memory, sqlite, postgres; got %q", cfg.Storage)
	}

	if v := os.Getenv("SLOW_QUERY_THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SLOW_QUERY_THRESHOLD must be a duration (e.g. 50ms): %w", err)
		}
		cfg.SlowQueryThreshold = d
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("DB_MAX_CONNS must be a non-negative integer, got %q", v)
		}
		cfg.DBMaxConns = int32(n)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
