package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/employee-dashboard/internal/config"
)

func testBucketConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   capacity,
		RefillInterval: time.Minute,
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl:test",
	}
}

// hitBucket sends one request through the limiter from the given
// client address and returns the recorder.
func hitBucket(t *testing.T, mw echo.MiddlewareFunc, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestTokenBucketDeniesWhenExhausted(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	mw := NewTokenBucket(testBucketConfig(2), rdb)

	first := hitBucket(t, mw, "10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := hitBucket(t, mw, "10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	// The bucket is empty: the next attempt is rejected and told when
	// to come back.
	third := hitBucket(t, mw, "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "too many requests")
}

func TestTokenBucketIsPerClientIP(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	mw := NewTokenBucket(testBucketConfig(1), rdb)

	require.Equal(t, http.StatusOK, hitBucket(t, mw, "10.0.0.1:5000").Code)
	require.Equal(t, http.StatusTooManyRequests, hitBucket(t, mw, "10.0.0.1:5000").Code)

	// A different client still has a full bucket.
	assert.Equal(t, http.StatusOK, hitBucket(t, mw, "10.0.0.2:5000").Code)
}

func TestTokenBucketFailsOpenWithoutRedis(t *testing.T) {
	mw := NewTokenBucket(testBucketConfig(1), nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitBucket(t, mw, "10.0.0.1:5000").Code)
	}
}
