package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/employee-dashboard/internal/handler"
	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/repository/memory"
)

func postExpense(t *testing.T, h *handler.ExpenseHandler, userID uint64, body string) *decoded {
	t.Helper()
	c, rec := newAuthCtx(t, http.MethodPost, "/api/expenses", body, userID, "mario", "mario@example.com")
	require.NoError(t, h.Create(c))
	return &decoded{code: rec.Code, body: decodeBody(t, rec), raw: rec.Body.String()}
}

func TestCreateExpense(t *testing.T) {
	h := handler.NewExpenseHandler(memory.NewExpenseStore())

	resp := postExpense(t, h, 1, `{"date":"2025-03-14","amount":42.50,"category":"travel","payment_method":"card","description":"train to Milan"}`)
	require.Equal(t, http.StatusOK, resp.code)

	assert.Equal(t, 42.50, resp.body["amount"])
	assert.Equal(t, "pending", resp.body["status"])

	// The receipt reference is generated server-side.
	ref := resp.body["receipt_ref"].(string)
	assert.True(t, strings.HasPrefix(ref, "rcpt-"))

	other := postExpense(t, h, 1, `{"date":"2025-03-15","amount":10,"category":"meals","payment_method":"cash"}`)
	assert.NotEqual(t, ref, other.body["receipt_ref"])
}

func TestCreateExpenseValidation(t *testing.T) {
	h := handler.NewExpenseHandler(memory.NewExpenseStore())

	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"date":"2025-03-14","amount":0,"category":"travel","payment_method":"card"}`},
		{"negative amount", `{"date":"2025-03-14","amount":-5,"category":"travel","payment_method":"card"}`},
		{"sub-cent amount", `{"date":"2025-03-14","amount":9.999,"category":"travel","payment_method":"card"}`},
		{"missing category", `{"date":"2025-03-14","amount":10,"category":"","payment_method":"card"}`},
		{"bad date", `{"date":"tomorrow","amount":10,"category":"travel","payment_method":"card"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postExpense(t, h, 1, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.code)
		})
	}
}

func TestDeletePendingExpense(t *testing.T) {
	store := memory.NewExpenseStore()
	h := handler.NewExpenseHandler(store)
	postExpense(t, h, 1, `{"date":"2025-03-14","amount":10,"category":"travel","payment_method":"card"}`)

	c, rec := newAuthCtx(t, http.MethodDelete, "/api/expenses/1", "", 1, "mario", "mario@example.com")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteApprovedExpense(t *testing.T) {
	store := memory.NewExpenseStore()
	h := handler.NewExpenseHandler(store)
	postExpense(t, h, 1, `{"date":"2025-03-14","amount":10,"category":"travel","payment_method":"card"}`)

	// Once approved the request is out of the user's hands.
	store.SetStatus(1, model.ExpenseStatusApproved)

	c, rec := newAuthCtx(t, http.MethodDelete, "/api/expenses/1", "", 1, "mario", "mario@example.com")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteOtherUsersExpense(t *testing.T) {
	store := memory.NewExpenseStore()
	h := handler.NewExpenseHandler(store)
	postExpense(t, h, 1, `{"date":"2025-03-14","amount":10,"category":"travel","payment_method":"card"}`)

	c, rec := newAuthCtx(t, http.MethodDelete, "/api/expenses/1", "", 2, "luigi", "luigi@example.com")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListExpensesOwnOnly(t *testing.T) {
	store := memory.NewExpenseStore()
	h := handler.NewExpenseHandler(store)
	postExpense(t, h, 1, `{"date":"2025-03-14","amount":10,"category":"travel","payment_method":"card"}`)
	postExpense(t, h, 2, `{"date":"2025-03-14","amount":99,"category":"meals","payment_method":"cash"}`)

	c, rec := newAuthCtx(t, http.MethodGet, "/api/expenses", "", 1, "mario", "mario@example.com")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "travel", items[0].(map[string]any)["category"])
}
