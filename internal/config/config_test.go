package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "POINTS_RATE", "SESSION_TTL", "SEED_DEMO", "REDIS_DB", "CATALOG_COLLECTION"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 5.0, cfg.PointsRate)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Empty(t, cfg.CatalogCollection)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("POINTS_RATE", "0.1")
	t.Setenv("SESSION_TTL", "2")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATALOG_COLLECTION", "products")

	cfg := FromEnv()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.InDelta(t, 0.1, cfg.PointsRate, 1e-9)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "products", cfg.CatalogCollection)
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("POINTS_RATE", "lots")
	t.Setenv("SESSION_TTL", "-4")

	cfg := FromEnv()

	assert.Equal(t, 5.0, cfg.PointsRate)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
}
