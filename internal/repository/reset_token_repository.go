package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ResetTokenRepo implements ResetTokenStore on MySQL.
type ResetTokenRepo struct{ DB *sql.DB }

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo { return &ResetTokenRepo{DB: db} }

// Issue deletes every existing token for the user and inserts the new
// one, so only the newest token is ever redeemable. Both statements
// run in one transaction.
func (r *ResetTokenRepo) Issue(ctx context.Context, userID uint64, token string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM password_resets WHERE user_id=?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO password_resets (user_id, token, expires_at, used) VALUES (?,?,?,0)",
		userID, token, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Redeem consumes a token and replaces the owner's credential in the
// same transaction, so a token is only ever burned together with a
// successful password write. The SELECT ... FOR UPDATE only matches
// rows that are unused and unexpired, so a second redemption, an
// expired token and an unknown token are all rejected by the same
// code path.
func (r *ResetTokenRepo) Redeem(ctx context.Context, token, passwordHash string, now time.Time) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var userID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM password_resets WHERE token=? AND used=0 AND expires_at > ? LIMIT 1 FOR UPDATE",
		token, now).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE password_resets SET used=1 WHERE token=? AND used=0", token)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrInvalidToken
	}
	res, err = tx.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", passwordHash, userID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return userID, nil
}
