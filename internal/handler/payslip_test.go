package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/employee-dashboard/internal/handler"
	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/queue"
	"github.com/iliyamo/employee-dashboard/internal/repository/memory"
)

type payslipFixture struct {
	users    *memory.UserStore
	entries  *memory.TimesheetStore
	payslips *memory.PayslipStore
	events   []queue.NotificationEvent
	h        *handler.PayslipHandler
	userID   uint64
}

func newPayslipFixture(t *testing.T) *payslipFixture {
	t.Helper()
	f := &payslipFixture{
		users:    memory.NewUserStore(),
		entries:  memory.NewTimesheetStore(),
		payslips: memory.NewPayslipStore(),
	}
	f.h = handler.NewPayslipHandler(f.users, f.entries, f.payslips)
	f.h.Publish = func(_ context.Context, ev queue.NotificationEvent) error {
		f.events = append(f.events, ev)
		return nil
	}

	uid, err := f.users.Register(context.Background(),
		model.User{Username: "mario", Email: "mario@example.com", PasswordHash: "x"},
		model.Profile{Nome: "Mario", Cognome: "Rossi", HourlyRate: 20})
	require.NoError(t, err)
	f.userID = uid
	return f
}

// logHours inserts one timesheet entry on the given day of March 2025.
func (f *payslipFixture) logHours(t *testing.T, day int, hours float64) {
	t.Helper()
	require.NoError(t, f.entries.Create(context.Background(), &model.TimesheetEntry{
		UserID:  f.userID,
		Date:    time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Project: "Internal",
		Hours:   hours,
		Type:    "standard",
	}))
}

func (f *payslipFixture) generate(t *testing.T, body string) *decoded {
	t.Helper()
	c, rec := newAuthCtx(t, http.MethodPost, "/api/payslips/generate", body, f.userID, "mario", "mario@example.com")
	require.NoError(t, f.h.Generate(c))
	return &decoded{code: rec.Code, body: decodeBody(t, rec), raw: rec.Body.String()}
}

func (f *payslipFixture) recalculate(t *testing.T, id string) *decoded {
	t.Helper()
	c, rec := newAuthCtx(t, http.MethodPut, "/api/payslips/"+id+"/recalculate", "", f.userID, "mario", "mario@example.com")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, f.h.Recalculate(c))
	return &decoded{code: rec.Code, body: decodeBody(t, rec), raw: rec.Body.String()}
}

func TestGeneratePayslip(t *testing.T) {
	f := newPayslipFixture(t)
	f.logHours(t, 3, 6)
	f.logHours(t, 4, 4)

	resp := f.generate(t, `{"month":3,"year":2025}`)
	require.Equal(t, http.StatusCreated, resp.code)

	// 10 hours at 20.00/h: flat INPS plus first-bracket IRPEF.
	assert.Equal(t, 200.00, resp.body["gross_amount"])
	assert.Equal(t, 135.62, resp.body["net_amount"])
	assert.Equal(t, "2025-04-01", resp.body["issue_date"])
	assert.Equal(t, "mario", resp.body["issued_by"])

	details := resp.body["salary_details"].(map[string]any)
	assert.Equal(t, 10.0, details["total_hours"])
	assert.Equal(t, 18.38, details["inps_amount"])
	assert.Equal(t, 46.00, details["irpef_amount"])

	require.Len(t, f.events, 1)
	assert.Equal(t, queue.TypePayslipIssued, f.events[0].Type)
	assert.Equal(t, 135.62, f.events[0].NetAmount)
}

func TestGeneratePayslipDuplicatePeriod(t *testing.T) {
	f := newPayslipFixture(t)
	f.logHours(t, 3, 8)

	first := f.generate(t, `{"month":3,"year":2025}`)
	require.Equal(t, http.StatusCreated, first.code)

	second := f.generate(t, `{"month":3,"year":2025}`)
	assert.Equal(t, http.StatusBadRequest, second.code)
	assert.Equal(t, "payslip already exists for this period", second.body["message"])

	// A different period still works.
	f.entries.Create(context.Background(), &model.TimesheetEntry{
		UserID: f.userID, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Project: "Internal", Hours: 8, Type: "standard",
	})
	third := f.generate(t, `{"month":4,"year":2025}`)
	assert.Equal(t, http.StatusCreated, third.code)
}

func TestGeneratePayslipNoTimesheetData(t *testing.T) {
	f := newPayslipFixture(t)

	resp := f.generate(t, `{"month":3,"year":2025}`)
	assert.Equal(t, http.StatusBadRequest, resp.code)
	assert.Equal(t, "no timesheet entries for this period", resp.body["message"])
}

func TestGeneratePayslipValidation(t *testing.T) {
	f := newPayslipFixture(t)

	resp := f.generate(t, `{"month":13,"year":1990}`)
	assert.Equal(t, http.StatusBadRequest, resp.code)
	assert.Equal(t, "validation failed", resp.body["message"])
	assert.Len(t, resp.body["errors"], 2)
}

func TestRecalculatePayslip(t *testing.T) {
	f := newPayslipFixture(t)
	f.logHours(t, 3, 10)

	created := f.generate(t, `{"month":3,"year":2025}`)
	require.Equal(t, http.StatusCreated, created.code)
	assert.Equal(t, 200.00, created.body["gross_amount"])

	// More hours land for the same period and the rate goes up.
	f.logHours(t, 10, 10)
	f.users.SetHourlyRate(f.userID, 25)

	resp := f.recalculate(t, "1")
	require.Equal(t, http.StatusOK, resp.code)

	// 20 hours at 25.00/h.
	assert.Equal(t, 500.00, resp.body["gross_amount"])
	assert.Equal(t, 339.05, resp.body["net_amount"])

	// The overwrite is persisted.
	p, err := f.payslips.GetByIDAndUser(context.Background(), 1, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 500.00, p.GrossAmount)
	assert.Equal(t, 339.05, p.NetAmount)
}

func TestRecalculateUnknownPayslip(t *testing.T) {
	f := newPayslipFixture(t)

	resp := f.recalculate(t, "99")
	assert.Equal(t, http.StatusNotFound, resp.code)
}

func TestRecalculateOtherUsersPayslip(t *testing.T) {
	f := newPayslipFixture(t)
	f.logHours(t, 3, 8)
	created := f.generate(t, `{"month":3,"year":2025}`)
	require.Equal(t, http.StatusCreated, created.code)

	// A different user cannot see, let alone recalculate, the slip.
	c, rec := newAuthCtx(t, http.MethodPut, "/api/payslips/1/recalculate", "", 999, "eve", "eve@example.com")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, f.h.Recalculate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPayslips(t *testing.T) {
	f := newPayslipFixture(t)
	f.logHours(t, 3, 8)
	require.Equal(t, http.StatusCreated, f.generate(t, `{"month":3,"year":2025}`).code)

	c, rec := newAuthCtx(t, http.MethodGet, "/api/payslips", "", f.userID, "mario", "mario@example.com")
	require.NoError(t, f.h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["items"], 1)
}
