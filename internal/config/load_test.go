package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 2, cfg.Worker.Count)
	assert.Equal(t, 30, cfg.Worker.PopTimeoutSecs)
	assert.Equal(t, 5, cfg.Worker.RetryBackoffSecs)
	assert.Equal(t, 1800, cfg.Worker.LeaseTTLSecs)
	assert.Equal(t, 300, cfg.Worker.ReapIntervalSecs)
	assert.Equal(t, "/tmp/outputs", cfg.Worker.OutputDir)
	assert.Equal(t, "/tmp/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(16*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "complex_words", cfg.Pipeline.Profile)
	assert.Equal(t, 10, cfg.Pipeline.TopKeywords)
	assert.Equal(t, 20, cfg.Pipeline.TopComplexWords)
	assert.Equal(t, 3, cfg.Pipeline.SummarySentences)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DECKFORGE_SERVER_PORT", "9090")
	t.Setenv("DECKFORGE_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("DECKFORGE_WORKER_COUNT", "8")
	t.Setenv("DECKFORGE_PIPELINE_PROFILE", "keyword_entity")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Worker.Count)
	assert.Equal(t, "keyword_entity", cfg.Pipeline.Profile)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("DECKFORGE_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	t.Setenv("DECKFORGE_PIPELINE_PROFILE", "haiku")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsInvalidWorkerCount(t *testing.T) {
	t.Setenv("DECKFORGE_WORKER_COUNT", "0")

	_, err := Load()
	require.Error(t, err)
}
