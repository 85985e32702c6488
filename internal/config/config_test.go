package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "SERVER_PORT", "STORAGE_BACKEND", "DB_DRIVER", "CACHE_TTL", "ADMIN_AUTH", "S3_BUCKET", "MAX_UPLOAD_BYTES")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.AdminAuth)
	assert.False(t, cfg.UploadsEnabled())
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
}

func TestLoad_EmptyValuesFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty storage backend",
			key:  "STORAGE_BACKEND",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendMemory, cfg.StorageBackend)
			},
		},
		{
			name: "empty server port",
			key:  "SERVER_PORT",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.ServerPort)
			},
		},
		{
			name:  "blank db driver",
			key:   "DB_DRIVER",
			value: "  ",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
			},
		},
		{
			name: "empty cron schedule",
			key:  "CRON_SCHEDULE",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "@every 5m", cfg.CronSchedule)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "database")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("ADMIN_AUTH", "true")
	t.Setenv("S3_BUCKET", "documents")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, BackendDatabase, cfg.StorageBackend)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.AdminAuth)
	assert.True(t, cfg.UploadsEnabled())
	assert.True(t, cfg.Development())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}
