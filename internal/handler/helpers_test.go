package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/employee-dashboard/internal/config"
)

// testCfg uses the minimum bcrypt cost so hashing stays fast.
var testCfg = config.Config{
	Env:           "test",
	JWTSecret:     "handler-test-secret",
	TokenTTLHours: 24,
	BcryptCost:    4,
}

// newCtx builds an Echo context for one request. The body, when
// non-empty, is sent as JSON.
func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(r, rec), rec
}

// newAuthCtx is newCtx plus the identity claims the JWT middleware
// would have injected.
func newAuthCtx(t *testing.T, method, target, body string, userID uint64, username, email string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newCtx(t, method, target, body)
	c.Set("user_id", userID)
	c.Set("username", username)
	c.Set("email", email)
	return c, rec
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
