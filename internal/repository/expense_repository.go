package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// ExpenseRepo implements ExpenseStore on MySQL.
type ExpenseRepo struct{ DB *sql.DB }

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{DB: db} }

const expenseCols = "id,user_id,date,amount,category,payment_method,description,receipt_ref,status,created_at"

// ListByUser returns the user's reimbursement requests, newest first.
func (r *ExpenseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Expense, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+expenseCols+" FROM expense_reimbursement WHERE user_id=? ORDER BY date DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Expense, 0)
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Amount, &e.Category,
			&e.PaymentMethod, &e.Description, &e.ReceiptRef, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a request and fills in its id.
func (r *ExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO expense_reimbursement (user_id, date, amount, category, payment_method, description, receipt_ref, status) VALUES (?,?,?,?,?,?,?,?)",
		e.UserID, e.Date, e.Amount, e.Category, e.PaymentMethod, e.Description, e.ReceiptRef, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Delete removes a request only while it is still pending and owned
// by the requester. A non-pending request yields ErrForbidden.
func (r *ExpenseRepo) Delete(ctx context.Context, id, userID uint64) error {
	var owner uint64
	var status string
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, status FROM expense_reimbursement WHERE id=? LIMIT 1", id).Scan(&owner, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != userID || status != model.ExpenseStatusPending {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM expense_reimbursement WHERE id=?", id)
	return err
}
