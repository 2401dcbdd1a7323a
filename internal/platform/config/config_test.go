package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 5*time.Second, cfg.PartitionTimeout)
	assert.Equal(t, 60*time.Second, cfg.StatsCacheTTL)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WORKSCOPE_ADDR", ":9999")
	t.Setenv("WORKSCOPE_FETCH_CONCURRENCY", "16")
	t.Setenv("WORKSCOPE_PARTITION_TIMEOUT", "2s")
	t.Setenv("WORKSCOPE_REDIS_URL", "redis://localhost:6379/0")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 16, cfg.FetchConcurrency)
	assert.Equal(t, 2*time.Second, cfg.PartitionTimeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("WORKSCOPE_FETCH_CONCURRENCY", "-3")
	t.Setenv("WORKSCOPE_PARTITION_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 8, cfg.FetchConcurrency, "non-positive falls back to default")
	assert.Equal(t, 5*time.Second, cfg.PartitionTimeout, "unparseable falls back to default")
}
