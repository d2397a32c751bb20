package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ModeRemote, cfg.Inventory.Mode)
	assert.Equal(t, 5*time.Second, cfg.Inventory.Timeout)
	assert.Equal(t, 10, cfg.Inventory.PageSize)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "inventory.events", cfg.Kafka.Topic)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INVENTORY_MODE", ModeLocal)
	t.Setenv("INVENTORY_TIMEOUT", "250ms")
	t.Setenv("INVENTORY_PAGE_SIZE", "25")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://x.test")

	cfg := LoadEnv()

	assert.Equal(t, ModeLocal, cfg.Inventory.Mode)
	assert.Equal(t, 250*time.Millisecond, cfg.Inventory.Timeout)
	assert.Equal(t, 25, cfg.Inventory.PageSize)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"http://x.test"}, cfg.Server.CORSOrigins)
}

func TestLoadEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("INVENTORY_PAGE_SIZE", "lots")
	t.Setenv("RETRY_MAX_INTERVAL", "soon")
	t.Setenv("KAFKA_ENABLED", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 10, cfg.Inventory.PageSize)
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxInterval)
	assert.False(t, cfg.Kafka.Enabled)
}
