package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// TimesheetRepo implements TimesheetStore on MySQL.
type TimesheetRepo struct{ DB *sql.DB }

func NewTimesheetRepo(db *sql.DB) *TimesheetRepo { return &TimesheetRepo{DB: db} }

const timesheetCols = "id,user_id,date,project,hours,type,description,created_at"

func scanEntries(rows *sql.Rows) ([]model.TimesheetEntry, error) {
	defer rows.Close()
	out := make([]model.TimesheetEntry, 0)
	for rows.Next() {
		var e model.TimesheetEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Project, &e.Hours, &e.Type, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListByUser returns every entry owned by the user, newest date first.
func (r *TimesheetRepo) ListByUser(ctx context.Context, userID uint64) ([]model.TimesheetEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timesheetCols+" FROM timesheet WHERE user_id=? ORDER BY date DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// ListForPeriod returns the user's entries inside one calendar month.
func (r *TimesheetRepo) ListForPeriod(ctx context.Context, userID uint64, month, year int) ([]model.TimesheetEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timesheetCols+" FROM timesheet WHERE user_id=? AND MONTH(date)=? AND YEAR(date)=? ORDER BY date",
		userID, month, year)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Create inserts an entry and fills in its id.
func (r *TimesheetRepo) Create(ctx context.Context, e *model.TimesheetEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO timesheet (user_id, date, project, hours, type, description) VALUES (?,?,?,?,?,?)",
		e.UserID, e.Date, e.Project, e.Hours, e.Type, e.Description)
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

// Delete removes an entry when the requester owns it; ErrForbidden on
// an ownership mismatch, ErrNotFound for an unknown id.
func (r *TimesheetRepo) Delete(ctx context.Context, id, userID uint64) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM timesheet WHERE id=? LIMIT 1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM timesheet WHERE id=?", id)
	return err
}
