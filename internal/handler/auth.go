package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/config"
	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	"github.com/iliyamo/employee-dashboard/internal/utils"
	"github.com/iliyamo/employee-dashboard/internal/validate"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	Cognome  string `json:"cognome"`
	JobTitle string `json:"jobTitle"`
	Team     string `json:"team"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userPart  `json:"user"`
}

// defaultHourlyRate is assigned to every new profile; payroll uses it
// until HR adjusts the rate.
const defaultHourlyRate = 15.00

// Register creates the user and its profile atomically and returns a
// bearer token so the client is logged in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Validation runs before any database access.
	var verr validate.Errors
	if !validate.Username(req.Username) {
		verr.Add("username", "username must be between 3 and 50 characters")
	}
	if !validate.Email(req.Email) {
		verr.Add("email", "invalid email address")
	}
	if !validate.Password(req.Password) {
		verr.Add("password", "password must be at least 8 characters with a letter and a digit")
	}
	if strings.TrimSpace(req.Nome) == "" {
		verr.Add("nome", "nome is required")
	}
	if strings.TrimSpace(req.Cognome) == "" {
		verr.Add("cognome", "cognome is required")
	}
	if !verr.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation failed", "errors": verr})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "registration failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Register(ctx,
		model.User{Username: req.Username, Email: req.Email, PasswordHash: hash},
		model.Profile{
			Nome:       strings.TrimSpace(req.Nome),
			Cognome:    strings.TrimSpace(req.Cognome),
			JobTitle:   strings.TrimSpace(req.JobTitle),
			Team:       strings.TrimSpace(req.Team),
			HourlyRate: defaultHourlyRate,
		})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) || errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "registration failed"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, req.Username, req.Email, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "token issue failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token:     token.Token,
		ExpiresAt: token.Exp,
		User:      userPart{ID: uid, Username: req.Username, Email: req.Email},
	})
}

// Login verifies credentials and issues a 24h bearer token. Unknown
// email and wrong password produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Email, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "token issue failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token:     token.Token,
		ExpiresAt: token.Exp,
		User:      userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// Me echoes the identity claims of the current token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  c.Get("user_id"),
		"username": c.Get("username"),
		"email":    c.Get("email"),
	})
}
