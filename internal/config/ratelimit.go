package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig describes one token-bucket limiter instance. Two
// instances run in this application: a strict bucket on the login
// endpoint (brute-force protection) and a wide bucket on the whole
// API group (coarse backpressure). Limiter state lives in Redis so
// limits hold across horizontally scaled instances.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadLoginRateLimit configures the login limiter: 5 requests per
// 15 minutes per client IP.
func LoadLoginRateLimit() RateLimitConfig {
	return normalize(RateLimitConfig{
		Enabled:        envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("LOGIN_RATE_LIMIT_CAPACITY", 5),
		RefillTokens:   envInt("LOGIN_RATE_LIMIT_REFILL_TOKENS", 5),
		RefillInterval: envDur("LOGIN_RATE_LIMIT_REFILL_INTERVAL", 15*time.Minute),
		TTL:            envDur("LOGIN_RATE_LIMIT_TTL", time.Hour),
		KeyStrategy:    "ip",
		Prefix:         envStr("LOGIN_RATE_LIMIT_PREFIX", "rl:login"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	})
}

// LoadAPIRateLimit configures the general limiter: 100 requests per
// minute per client IP.
func LoadAPIRateLimit() RateLimitConfig {
	return normalize(RateLimitConfig{
		Enabled:        envBool("API_RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("API_RATE_LIMIT_CAPACITY", 100),
		RefillTokens:   envInt("API_RATE_LIMIT_REFILL_TOKENS", 100),
		RefillInterval: envDur("API_RATE_LIMIT_REFILL_INTERVAL", time.Minute),
		TTL:            envDur("API_RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    "ip",
		Prefix:         envStr("API_RATE_LIMIT_PREFIX", "rl:api"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	})
}

func normalize(cfg RateLimitConfig) RateLimitConfig {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
