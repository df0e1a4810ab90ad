package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("QUOTA_DAILY_STREAM_LIMIT", "3")
	os.Setenv("WATERMARK_OPACITY", "0.5")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("QUOTA_DAILY_STREAM_LIMIT")
		os.Unsetenv("WATERMARK_OPACITY")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 3, cfg.Quota.DailyStreamLimit)
	assert.Equal(t, 0.5, cfg.Watermark.Opacity)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"QUOTA_DAILY_STREAM_LIMIT", "QUOTA_PER_CONTENT_DAILY_LIMIT",
		"QUOTA_DAILY_CONTENT_LIMIT", "PAGE_CHUNK_SIZE", "WATERMARK_OPACITY",
	} {
		os.Unsetenv(k)
	}

	cfg := Load()

	assert.Equal(t, 100, cfg.Quota.DailyStreamLimit)
	assert.Equal(t, 10, cfg.Quota.PerContentDailyLimit)
	assert.Equal(t, 50, cfg.Quota.DailyContentLimit)
	assert.Equal(t, 15, cfg.Pagination.PageChunkSize)
	assert.Equal(t, 0.15, cfg.Watermark.Opacity)
	assert.Equal(t, "Helvetica", cfg.Watermark.FontName)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	os.Setenv(key, "1.5")
	assert.Equal(t, 1.5, getEnvFloat(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 0.25, getEnvFloat(key, 0.25))

	os.Unsetenv(key)
	assert.Equal(t, 0.25, getEnvFloat(key, 0.25))
}
