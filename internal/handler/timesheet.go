package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	"github.com/iliyamo/employee-dashboard/internal/validate"
)

// TimesheetHandler serves the per-user work log.
type TimesheetHandler struct {
	Entries repository.TimesheetStore
}

func NewTimesheetHandler(entries repository.TimesheetStore) *TimesheetHandler {
	return &TimesheetHandler{Entries: entries}
}

type timesheetReq struct {
	Date        string  `json:"date"`
	Project     string  `json:"project"`
	Hours       float64 `json:"hours"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type timesheetResp struct {
	ID          uint64  `json:"id"`
	Date        string  `json:"date"`
	Project     string  `json:"project"`
	Hours       float64 `json:"hours"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

func toTimesheetResp(e model.TimesheetEntry) timesheetResp {
	return timesheetResp{
		ID: e.ID, Date: e.Date.Format("2006-01-02"), Project: e.Project,
		Hours: e.Hours, Type: e.Type, Description: e.Description,
	}
}

// List returns the current user's entries.
func (h *TimesheetHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Entries.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	out := make([]timesheetResp, 0, len(items))
	for _, e := range items {
		out = append(out, toTimesheetResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create logs a new entry for the current user. Hours must fall in
// [0.5, 24] on a half-hour boundary; a single entry never spans days.
func (h *TimesheetHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	var req timesheetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}

	var verr validate.Errors
	date, ok := validate.Date(req.Date)
	if !ok {
		verr.Add("date", "date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(req.Project) == "" {
		verr.Add("project", "project is required")
	}
	if !validate.Hours(req.Hours) {
		verr.Add("hours", "hours must be between 0.5 and 24 in half-hour steps")
	}
	if strings.TrimSpace(req.Type) == "" {
		verr.Add("type", "type is required")
	}
	if !verr.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation failed", "errors": verr})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.TimesheetEntry{
		UserID:      userID,
		Date:        date,
		Project:     strings.TrimSpace(req.Project),
		Hours:       req.Hours,
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.Entries.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "create failed"})
	}
	return c.JSON(http.StatusOK, toTimesheetResp(*e))
}

// Delete removes an entry the current user owns.
func (h *TimesheetHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Entries.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "entry not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "not the owner of this entry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "entry deleted"})
}
