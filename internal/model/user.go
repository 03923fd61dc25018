package model

import "time"

// User represents an application account as stored in the `users`
// table. The json tags are omitted here because these structs are
// primarily used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Profile holds the employee details attached 1:1 to a user. The
// hourly rate drives payslip generation and defaults to 15.00 when
// the profile is created at registration time.
//
// Fields:
//  UserID     – owner of the profile (primary key, references users.id).
//  Nome       – first name.
//  Cognome    – last name.
//  JobTitle   – current job title.
//  Team       – team or department name.
//  Avatar     – optional avatar URL.
//  HourlyRate – contractual hourly rate used for payroll.
type Profile struct {
	UserID     uint64  // profiles.user_id
	Nome       string  // profiles.nome
	Cognome    string  // profiles.cognome
	JobTitle   string  // profiles.job_title
	Team       string  // profiles.team
	Avatar     string  // profiles.avatar
	HourlyRate float64 // profiles.hourly_rate
}
