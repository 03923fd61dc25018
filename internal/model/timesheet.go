package model

import "time"

// TimesheetEntry is a single logged block of work in the `timesheet`
// table. Hours are constrained to [0.5, 24] with half-hour
// granularity; entries never span days.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user that logged the entry.
//  Date        – calendar day the work was performed (date only).
//  Project     – project the hours are billed to.
//  Hours       – hours worked, 0.5 .. 24 in half-hour steps.
//  Type        – entry type (e.g. development, meeting, vacation).
//  Description – free-form note.
//  CreatedAt   – creation timestamp.
type TimesheetEntry struct {
	ID          uint64    // timesheet.id
	UserID      uint64    // timesheet.user_id
	Date        time.Time // timesheet.date
	Project     string    // timesheet.project
	Hours       float64   // timesheet.hours
	Type        string    // timesheet.type
	Description string    // timesheet.description
	CreatedAt   time.Time // timesheet.created_at
}
