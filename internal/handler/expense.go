package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/payroll"
	"github.com/iliyamo/employee-dashboard/internal/repository"
	"github.com/iliyamo/employee-dashboard/internal/validate"
)

// ExpenseHandler serves expense reimbursement requests.
type ExpenseHandler struct {
	Expenses repository.ExpenseStore
}

func NewExpenseHandler(expenses repository.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

type expenseReq struct {
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
	Description   string  `json:"description"`
}

type expenseResp struct {
	ID            uint64  `json:"id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
	Description   string  `json:"description"`
	ReceiptRef    string  `json:"receipt_ref"`
	Status        string  `json:"status"`
}

func toExpenseResp(e model.Expense) expenseResp {
	return expenseResp{
		ID: e.ID, Date: e.Date.Format("2006-01-02"), Amount: e.Amount,
		Category: e.Category, PaymentMethod: e.PaymentMethod,
		Description: e.Description, ReceiptRef: e.ReceiptRef, Status: e.Status,
	}
}

// List returns the current user's reimbursement requests.
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Expenses.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	out := make([]expenseResp, 0, len(items))
	for _, e := range items {
		out = append(out, toExpenseResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create files a new pending request. The receipt reference is
// generated server-side so clients cannot collide or spoof it.
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	var req expenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}

	var verr validate.Errors
	date, ok := validate.Date(req.Date)
	if !ok {
		verr.Add("date", "date must be YYYY-MM-DD")
	}
	if !validate.Amount(req.Amount) {
		verr.Add("amount", "amount must be positive with at most two decimal places")
	}
	if strings.TrimSpace(req.Category) == "" {
		verr.Add("category", "category is required")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		verr.Add("payment_method", "payment_method is required")
	}
	if !verr.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation failed", "errors": verr})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.Expense{
		UserID:        userID,
		Date:          date,
		Amount:        payroll.Round2(req.Amount),
		Category:      strings.TrimSpace(req.Category),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Description:   strings.TrimSpace(req.Description),
		ReceiptRef:    "rcpt-" + uuid.NewString(),
		Status:        model.ExpenseStatusPending,
	}
	if err := h.Expenses.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "create failed"})
	}
	return c.JSON(http.StatusOK, toExpenseResp(*e))
}

// Delete withdraws a request; only the owner may delete and only
// while the request is still pending.
func (h *ExpenseHandler) Delete(c echo.Context) error {
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

	if err := h.Expenses.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "expense not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "only pending requests owned by you can be deleted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "expense deleted"})
}
