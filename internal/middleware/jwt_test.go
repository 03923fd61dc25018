package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-secret"

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      float64(7),
		"username": "mario",
		"email":    "mario@example.com",
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, reached := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, reached := runJWT(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok := signToken(t, "some-other-secret", time.Now().Add(time.Hour))
	rec, reached := runJWT(t, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok := signToken(t, testSecret, time.Now().Add(-time.Hour))
	rec, reached := runJWT(t, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	// Expired and malformed tokens produce the same body.
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestJWTAuthValidTokenSetsClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, testSecret, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		assert.Equal(t, float64(7), c.Get("user_id"))
		assert.Equal(t, "mario", c.Get("username"))
		assert.Equal(t, "mario@example.com", c.Get("email"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
