package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	got := dsn("app", "s3cret", "db.internal", "3306", "employee_dashboard")
	assert.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/employee_dashboard?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		got)

	// Without a password the colon is dropped entirely.
	assert.Equal(t,
		"app@tcp(localhost:3306)/employee_dashboard?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		dsn("app", "", "localhost", "3306", "employee_dashboard"))
}

// Repositories treat RowsAffected()==0 as "row does not exist", which
// is only sound when the driver reports matched rows. An UPDATE that
// leaves values unchanged (recalculating an up-to-date payslip,
// re-saving an identical profile) must not look like a missing row.
func TestDSNReportsMatchedRows(t *testing.T) {
	assert.Contains(t, dsn("u", "", "h", "3306", "d"), "clientFoundRows=true")
}
