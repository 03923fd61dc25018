package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// UserRepo implements UserStore on MySQL.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Register inserts the user and its profile in one transaction and
// returns the new user id. Both rows commit or neither does.
func (r *UserRepo) Register(ctx context.Context, u model.User, p model.Profile) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return 0, mapDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO profiles (user_id, nome, cognome, job_title, team, avatar, hourly_rate) VALUES (?,?,?,?,?,?,?)",
		id, p.Nome, p.Cognome, p.JobTitle, p.Team, p.Avatar, p.HourlyRate); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// mapDuplicate converts MySQL duplicate-key errors (1062) into the
// matching sentinel based on which unique index was hit.
func mapDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "username") {
		return ErrUsernameExists
	}
	return ErrEmailExists
}

const userCols = "id,username,email,password_hash,created_at,updated_at"

func (r *UserRepo) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// GetProfile fetches the profile row for a user.
func (r *UserRepo) GetProfile(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,nome,cognome,job_title,team,avatar,hourly_rate FROM profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.Nome, &p.Cognome, &p.JobTitle, &p.Team, &p.Avatar, &p.HourlyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// UpdateProfile updates the mutable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID uint64, jobTitle, team string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET job_title=?, team=? WHERE user_id=?", jobTitle, team, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
