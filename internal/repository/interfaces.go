package repository

import (
	"context"
	"time"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// UserStore persists accounts and their 1:1 profiles. Register must
// insert both rows atomically so a profile can never be missing for
// an existing user.
type UserStore interface {
	Register(ctx context.Context, u model.User, p model.Profile) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetProfile(ctx context.Context, userID uint64) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uint64, jobTitle, team string) error
}

// ResetTokenStore manages the password-reset token lifecycle:
// issued -> used | expired, both terminal. Issue replaces any prior
// tokens for the user; Redeem succeeds at most once per token.
type ResetTokenStore interface {
	Issue(ctx context.Context, userID uint64, token string, expiresAt time.Time) error
	// Redeem atomically validates and consumes a token and replaces
	// the owning user's credential with passwordHash, returning the
	// user id. Consuming the token and writing the credential happen
	// together or not at all: a failed credential write leaves the
	// token redeemable. Unknown, expired and used tokens all fail
	// with ErrInvalidToken.
	Redeem(ctx context.Context, token, passwordHash string, now time.Time) (uint64, error)
}

// MessageStore persists message-board posts. Ownership checks use the
// author's user id, never the display name.
type MessageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	Get(ctx context.Context, id uint64) (model.Message, error)
	Create(ctx context.Context, m *model.Message) error
	Update(ctx context.Context, id, authorID uint64, title, content string) (model.Message, error)
	Delete(ctx context.Context, id, authorID uint64) error
}

// TimesheetStore persists per-user work log entries.
type TimesheetStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.TimesheetEntry, error)
	ListForPeriod(ctx context.Context, userID uint64, month, year int) ([]model.TimesheetEntry, error)
	Create(ctx context.Context, e *model.TimesheetEntry) error
	Delete(ctx context.Context, id, userID uint64) error
}

// ExpenseStore persists reimbursement requests. Delete only succeeds
// while the request is still pending.
type ExpenseStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Expense, error)
	Create(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id, userID uint64) error
}

// PayslipStore persists generated payslips, unique per
// (user, month, year).
type PayslipStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Payslip, error)
	GetByIDAndUser(ctx context.Context, id, userID uint64) (model.Payslip, error)
	Exists(ctx context.Context, userID uint64, month, year int) (bool, error)
	Create(ctx context.Context, p *model.Payslip) error
	UpdateAmounts(ctx context.Context, id uint64, gross, net float64, details string) error
}
