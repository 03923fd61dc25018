package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadLoginRateLimitDefaults(t *testing.T) {
	cfg := LoadLoginRateLimit()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.Capacity)
	assert.Equal(t, 5, cfg.RefillTokens)
	assert.Equal(t, 15*time.Minute, cfg.RefillInterval)
	assert.Equal(t, "ip", cfg.KeyStrategy)
	assert.Equal(t, "rl:login", cfg.Prefix)
}

func TestLoadAPIRateLimitEnvOverride(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_CAPACITY", "250")
	t.Setenv("API_RATE_LIMIT_REFILL_INTERVAL", "30s")

	cfg := LoadAPIRateLimit()
	assert.Equal(t, 250, cfg.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RefillInterval)
}

func TestNormalizeFloorsValues(t *testing.T) {
	cfg := normalize(RateLimitConfig{Capacity: 0, RefillTokens: -1, RefillInterval: 0})
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	// TTL is lifted to at least five refill intervals.
	assert.Equal(t, 5*time.Second, cfg.TTL)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, Post ,")
	assert.True(t, m["GET"])
	assert.True(t, m["POST"])
	assert.Len(t, m, 2)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SOME_FLAG", "off")
	assert.False(t, envBool("SOME_FLAG", true))
	t.Setenv("SOME_FLAG", "garbage")
	assert.True(t, envBool("SOME_FLAG", true))
	assert.True(t, envBool("UNSET_FLAG", true))
}
