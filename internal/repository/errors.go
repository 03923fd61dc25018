// Package repository defines the persistence interfaces for the
// dashboard together with their MySQL implementations. Sentinel
// errors let handlers map failure scenarios onto HTTP status codes
// without inspecting driver details: ErrForbidden becomes 403,
// ErrNotFound 404, and the conflict family 400/409.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, or on a resource whose state forbids it
// (e.g. deleting a non-pending expense). Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when a registration collides with an
// existing email address.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when a registration collides with an
// existing username.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidToken is returned for password-reset tokens that are
// unknown, expired or already used. The three states are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// ErrPayslipExists is returned when a payslip for the same user,
// month and year has already been generated.
var ErrPayslipExists = errors.New("payslip already exists")

// ErrNoTimesheetData is returned when payslip generation finds no
// timesheet rows for the requested period.
var ErrNoTimesheetData = errors.New("no timesheet data for period")
