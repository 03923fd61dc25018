package model

import "time"

// Payslip is a generated pay statement, unique per (user, month,
// year). Generation reads the user's timesheet rows for the period
// and the profile hourly rate; recalculation overwrites the amounts
// in place using current data.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – employee the payslip belongs to.
//  Month         – payroll month, 1..12.
//  Year          – payroll year.
//  GrossAmount   – total hours × hourly rate, 2 decimal places.
//  NetAmount     – gross minus INPS and IRPEF deductions.
//  IssueDate     – first day of the month following the period.
//  IssuedBy      – username of the requester that generated it.
//  Status        – payslip status (issued).
//  SalaryDetails – structured breakdown serialized as JSON.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last recalculation timestamp.
type Payslip struct {
	ID            uint64    // payslips.id
	UserID        uint64    // payslips.user_id
	Month         int       // payslips.month
	Year          int       // payslips.year
	GrossAmount   float64   // payslips.gross_amount
	NetAmount     float64   // payslips.net_amount
	IssueDate     time.Time // payslips.issue_date
	IssuedBy      string    // payslips.issued_by
	Status        string    // payslips.status
	SalaryDetails string    // payslips.salary_details (JSON)
	CreatedAt     time.Time // payslips.created_at
	UpdatedAt     time.Time // payslips.updated_at
}
