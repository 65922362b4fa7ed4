package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "APP_ENV", "STORAGE_BACKEND", "DATABASE_URL", "SQLITE_PATH", "SLOW_QUERY_THRESHOLD", "SHUTDOWN_TIMEOUT", "DB_MAX_CONNS"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "file:members.db", cfg.SQLitePath)
	assert.Equal(t, 50*time.Millisecond, cfg.SlowQueryThreshold)
	assert.Zero(t, cfg.DBMaxConns)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/members")
	t.Setenv("SLOW_QUERY_THRESHOLD", "250ms")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowQueryThreshold)
	assert.EqualValues(t, 8, cfg.DBMaxConns)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORAGE_BACKEND": "postgres"}},
		{name: "unknown backend", env: map[string]string{"STORAGE_BACKEND": "mongo"}},
		{name: "bad threshold", env: map[string]string{"SLOW_QUERY_THRESHOLD": "fast"}},
		{name: "bad max conns", env: map[string]string{"DB_MAX_CONNS": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}
