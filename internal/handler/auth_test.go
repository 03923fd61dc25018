package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/employee-dashboard/internal/handler"
	"github.com/iliyamo/employee-dashboard/internal/repository/memory"
)

const registerBody = `{"username":"mario","email":"mario@example.com","password":"Password1","nome":"Mario","cognome":"Rossi","jobTitle":"Developer","team":"Backend"}`

func TestRegister(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	c, rec := newCtx(t, http.MethodPost, "/api/register", registerBody)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "mario", user["username"])
	assert.Equal(t, "mario@example.com", user["email"])

	// The profile was created in the same transaction.
	u, err := users.GetByEmail(c.Request().Context(), "mario@example.com")
	require.NoError(t, err)
	p, err := users.GetProfile(c.Request().Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mario", p.Nome)
	assert.Equal(t, 15.00, p.HourlyRate)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	c, _ := newCtx(t, http.MethodPost, "/api/register", registerBody)
	require.NoError(t, h.Register(c))

	// Same email, different username.
	c, rec := newCtx(t, http.MethodPost, "/api/register",
		`{"username":"mario2","email":"mario@example.com","password":"Password1","nome":"Mario","cognome":"Rossi"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	c, _ := newCtx(t, http.MethodPost, "/api/register", registerBody)
	require.NoError(t, h.Register(c))

	c, rec := newCtx(t, http.MethodPost, "/api/register",
		`{"username":"mario","email":"other@example.com","password":"Password1","nome":"Mario","cognome":"Rossi"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	// Weak password, bad email and short username all in one request;
	// every violation is reported.
	c, rec := newCtx(t, http.MethodPost, "/api/register",
		`{"username":"ab","email":"nope","password":"short","nome":"","cognome":""}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation failed", body["message"])
	assert.Len(t, body["errors"], 5)

	// Nothing was written.
	_, err := users.GetByUsername(c.Request().Context(), "ab")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	c, _ := newCtx(t, http.MethodPost, "/api/register", registerBody)
	require.NoError(t, h.Register(c))

	c, rec := newCtx(t, http.MethodPost, "/api/login",
		`{"email":"mario@example.com","password":"Password1"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])
}

func TestLoginBadCredentials(t *testing.T) {
	users := memory.NewUserStore()
	h := handler.NewAuthHandler(testCfg, users)

	c, _ := newCtx(t, http.MethodPost, "/api/register", registerBody)
	require.NoError(t, h.Register(c))

	// Wrong password and unknown email must be indistinguishable.
	c, recWrong := newCtx(t, http.MethodPost, "/api/login",
		`{"email":"mario@example.com","password":"WrongPass1"}`)
	require.NoError(t, h.Login(c))

	c, recUnknown := newCtx(t, http.MethodPost, "/api/login",
		`{"email":"ghost@example.com","password":"Password1"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, recWrong.Code)
	assert.Equal(t, http.StatusBadRequest, recUnknown.Code)
	assert.Equal(t, recWrong.Body.String(), recUnknown.Body.String())
}

func TestMe(t *testing.T) {
	h := handler.NewAuthHandler(testCfg, memory.NewUserStore())

	c, rec := newAuthCtx(t, http.MethodGet, "/api/me", "", 9, "mario", "mario@example.com")
	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "mario", body["username"])
	assert.Equal(t, "mario@example.com", body["email"])
}
