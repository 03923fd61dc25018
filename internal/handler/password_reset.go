package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/config"
	"github.com/iliyamo/employee-dashboard/internal/queue"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	notifier "github.com/iliyamo/employee-dashboard/internal/service"
	"github.com/iliyamo/employee-dashboard/internal/utils"
	"github.com/iliyamo/employee-dashboard/internal/validate"
)

// resetTokenTTL is how long a password-reset token stays redeemable.
const resetTokenTTL = time.Hour

// PasswordResetHandler implements the forgot/reset endpoints. Publish
// is the delivery hook for reset emails; it defaults to the AMQP
// notifier and is swappable in tests.
type PasswordResetHandler struct {
	Cfg     config.Config
	Users   repository.UserStore
	Tokens  repository.ResetTokenStore
	Publish func(ctx context.Context, ev queue.NotificationEvent) error
}

func NewPasswordResetHandler(cfg config.Config, users repository.UserStore, tokens repository.ResetTokenStore) *PasswordResetHandler {
	return &PasswordResetHandler{Cfg: cfg, Users: users, Tokens: tokens, Publish: notifier.Publish}
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

type resetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword issues a reset token for the account behind the
// given email. The response is identical whether or not the account
// exists, so the endpoint cannot be used to enumerate registered
// addresses; the token itself only travels over the notification
// queue. Issuing a new token revokes every previous one for the user.
func (h *PasswordResetHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validate.Email(email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// The generic response for unknown accounts matches the success
	// path exactly.
	generic := echo.Map{"success": true, "message": "if the account exists, a reset link has been sent"}

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, generic)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "request failed"})
	}

	token, err := utils.NewResetToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "request failed"})
	}
	expiresAt := time.Now().UTC().Add(resetTokenTTL)

	if err := h.Tokens.Issue(ctx, u.ID, token, expiresAt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "request failed"})
	}

	// Delivery failures are logged by the notifier and do not fail the
	// request; the user can simply ask again.
	_ = h.Publish(ctx, queue.NotificationEvent{
		Type:       queue.TypePasswordReset,
		UserID:     u.ID,
		Email:      u.Email,
		Username:   u.Username,
		ResetToken: token,
		ExpiresAt:  expiresAt.Format(time.RFC3339),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, generic)
}

// ResetPassword redeems a token and replaces the user's credential.
// Password strength is checked before any store access; unknown,
// expired and already-used tokens fail identically.
func (h *PasswordResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "token is required"})
	}
	if !validate.Password(req.NewPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "password must be at least 8 characters with a letter and a digit"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "reset failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Redemption burns the token and writes the credential in one
	// transaction; a failed write leaves the token redeemable.
	userID, err := h.Tokens.Redeem(ctx, token, hash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidToken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid or expired token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "reset failed"})
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "reset failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "password updated",
		"user":    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}
