package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/payroll"
	"github.com/iliyamo/employee-dashboard/internal/queue"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	notifier "github.com/iliyamo/employee-dashboard/internal/service"
	"github.com/iliyamo/employee-dashboard/internal/validate"
)

// PayslipHandler serves payslip generation, recalculation and
// listing. Publish is the notification hook for issued payslips; it
// defaults to the AMQP notifier and is swappable in tests.
type PayslipHandler struct {
	Users    repository.UserStore
	Entries  repository.TimesheetStore
	Payslips repository.PayslipStore
	Publish  func(ctx context.Context, ev queue.NotificationEvent) error
}

func NewPayslipHandler(users repository.UserStore, entries repository.TimesheetStore, payslips repository.PayslipStore) *PayslipHandler {
	return &PayslipHandler{Users: users, Entries: entries, Payslips: payslips, Publish: notifier.Publish}
}

type generateReq struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type payslipResp struct {
	ID            uint64            `json:"id"`
	Month         int               `json:"month"`
	Year          int               `json:"year"`
	GrossAmount   float64           `json:"gross_amount"`
	NetAmount     float64           `json:"net_amount"`
	IssueDate     string            `json:"issue_date"`
	IssuedBy      string            `json:"issued_by"`
	Status        string            `json:"status"`
	SalaryDetails payroll.Breakdown `json:"salary_details"`
}

func toPayslipResp(p model.Payslip) payslipResp {
	var bd payroll.Breakdown
	_ = json.Unmarshal([]byte(p.SalaryDetails), &bd)
	return payslipResp{
		ID: p.ID, Month: p.Month, Year: p.Year,
		GrossAmount: p.GrossAmount, NetAmount: p.NetAmount,
		IssueDate: p.IssueDate.Format("2006-01-02"), IssuedBy: p.IssuedBy,
		Status: p.Status, SalaryDetails: bd,
	}
}

// computeForPeriod sums the user's timesheet hours for the period and
// runs the payroll formula against the profile's current hourly rate.
func (h *PayslipHandler) computeForPeriod(ctx context.Context, userID uint64, month, year int) (payroll.Breakdown, error) {
	entries, err := h.Entries.ListForPeriod(ctx, userID, month, year)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	if len(entries) == 0 {
		return payroll.Breakdown{}, repository.ErrNoTimesheetData
	}
	profile, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	total := 0.0
	for _, e := range entries {
		total += e.Hours
	}
	return payroll.Compute(total, profile.HourlyRate), nil
}

// List returns the current user's payslips.
func (h *PayslipHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Payslips.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	out := make([]payslipResp, 0, len(items))
	for _, p := range items {
		out = append(out, toPayslipResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Generate creates the payslip for one period. Generation is
// idempotent-rejecting: a second call for the same (user, month,
// year) fails, it never silently regenerates.
func (h *PayslipHandler) Generate(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	var verr validate.Errors
	if !validate.Month(req.Month) {
		verr.Add("month", "month must be between 1 and 12")
	}
	if !validate.Year(req.Year) {
		verr.Add("year", "year is out of range")
	}
	if !verr.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation failed", "errors": verr})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if exists, err := h.Payslips.Exists(ctx, userID, req.Month, req.Year); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	} else if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "payslip already exists for this period"})
	}

	bd, err := h.computeForPeriod(ctx, userID, req.Month, req.Year)
	if err != nil {
		if errors.Is(err, repository.ErrNoTimesheetData) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "no timesheet entries for this period"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "generation failed"})
	}

	details, err := json.Marshal(bd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "generation failed"})
	}
	p := &model.Payslip{
		UserID:        userID,
		Month:         req.Month,
		Year:          req.Year,
		GrossAmount:   bd.GrossAmount,
		NetAmount:     bd.NetAmount,
		IssueDate:     payroll.IssueDate(req.Month, req.Year),
		IssuedBy:      getUsername(c),
		Status:        "issued",
		SalaryDetails: string(details),
	}
	if err := h.Payslips.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPayslipExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "payslip already exists for this period"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "generation failed"})
	}

	if email, ok := c.Get("email").(string); ok {
		_ = h.Publish(ctx, queue.NotificationEvent{
			Type:        queue.TypePayslipIssued,
			UserID:      userID,
			Email:       email,
			Username:    getUsername(c),
			PayslipID:   p.ID,
			Month:       p.Month,
			Year:        p.Year,
			GrossAmount: p.GrossAmount,
			NetAmount:   p.NetAmount,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, toPayslipResp(*p))
}

// Recalculate re-reads the stored period, re-fetches the current
// timesheet rows and hourly rate, and overwrites the amounts in
// place.
func (h *PayslipHandler) Recalculate(c echo.Context) error {
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

	p, err := h.Payslips.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "payslip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}

	bd, err := h.computeForPeriod(ctx, userID, p.Month, p.Year)
	if err != nil {
		if errors.Is(err, repository.ErrNoTimesheetData) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "no timesheet entries for this period"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "recalculation failed"})
	}

	details, err := json.Marshal(bd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "recalculation failed"})
	}
	if err := h.Payslips.UpdateAmounts(ctx, p.ID, bd.GrossAmount, bd.NetAmount, string(details)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "recalculation failed"})
	}

	p.GrossAmount = bd.GrossAmount
	p.NetAmount = bd.NetAmount
	p.SalaryDetails = string(details)
	return c.JSON(http.StatusOK, toPayslipResp(p))
}
