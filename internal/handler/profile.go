package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/repository"
)

// ProfileHandler serves the employee profile endpoints.
type ProfileHandler struct {
	Users repository.UserStore
}

func NewProfileHandler(users repository.UserStore) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

type profileResp struct {
	UserID     uint64  `json:"user_id"`
	Nome       string  `json:"nome"`
	Cognome    string  `json:"cognome"`
	JobTitle   string  `json:"job_title"`
	Team       string  `json:"team"`
	Avatar     string  `json:"avatar"`
	HourlyRate float64 `json:"hourly_rate"`
}

type updateProfileReq struct {
	JobTitle string `json:"job_title"`
	Team     string `json:"team"`
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, profileResp{
		UserID: p.UserID, Nome: p.Nome, Cognome: p.Cognome,
		JobTitle: p.JobTitle, Team: p.Team, Avatar: p.Avatar, HourlyRate: p.HourlyRate,
	})
}

// Update edits the mutable profile fields (job title and team).
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	jobTitle := strings.TrimSpace(req.JobTitle)
	team := strings.TrimSpace(req.Team)
	if jobTitle == "" && team == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Read-modify-write so an omitted field keeps its current value.
	current, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	if jobTitle == "" {
		jobTitle = current.JobTitle
	}
	if team == "" {
		team = current.Team
	}
	if err := h.Users.UpdateProfile(ctx, userID, jobTitle, team); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "update failed"})
	}

	p, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, profileResp{
		UserID: p.UserID, Nome: p.Nome, Cognome: p.Cognome,
		JobTitle: p.JobTitle, Team: p.Team, Avatar: p.Avatar, HourlyRate: p.HourlyRate,
	})
}
