package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// PayslipRepo implements PayslipStore on MySQL.
type PayslipRepo struct{ DB *sql.DB }

func NewPayslipRepo(db *sql.DB) *PayslipRepo { return &PayslipRepo{DB: db} }

const payslipCols = "id,user_id,month,year,gross_amount,net_amount,issue_date,issued_by,status,salary_details,created_at,updated_at"

func scanPayslip(row interface{ Scan(...any) error }) (model.Payslip, error) {
	var p model.Payslip
	err := row.Scan(&p.ID, &p.UserID, &p.Month, &p.Year, &p.GrossAmount, &p.NetAmount,
		&p.IssueDate, &p.IssuedBy, &p.Status, &p.SalaryDetails, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListByUser returns the user's payslips, most recent period first.
func (r *PayslipRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payslip, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+payslipCols+" FROM payslips WHERE user_id=? ORDER BY year DESC, month DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Payslip, 0)
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByIDAndUser fetches a payslip owned by the given user.
func (r *PayslipRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (model.Payslip, error) {
	p, err := scanPayslip(r.DB.QueryRowContext(ctx,
		"SELECT "+payslipCols+" FROM payslips WHERE id=? AND user_id=? LIMIT 1", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// Exists reports whether a payslip for the period was already generated.
func (r *PayslipRepo) Exists(ctx context.Context, userID uint64, month, year int) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM payslips WHERE user_id=? AND month=? AND year=? LIMIT 1",
		userID, month, year).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts a payslip and fills in its id. A duplicate-key error
// on the (user_id, month, year) unique index maps to ErrPayslipExists
// so concurrent generation attempts cannot both succeed.
func (r *PayslipRepo) Create(ctx context.Context, p *model.Payslip) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payslips (user_id, month, year, gross_amount, net_amount, issue_date, issued_by, status, salary_details) VALUES (?,?,?,?,?,?,?,?,?)",
		p.UserID, p.Month, p.Year, p.GrossAmount, p.NetAmount, p.IssueDate, p.IssuedBy, p.Status, p.SalaryDetails)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrPayslipExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// UpdateAmounts overwrites the computed amounts in place (recalculation).
func (r *PayslipRepo) UpdateAmounts(ctx context.Context, id uint64, gross, net float64, details string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payslips SET gross_amount=?, net_amount=?, salary_details=? WHERE id=?",
		gross, net, details, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
