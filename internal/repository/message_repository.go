package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/employee-dashboard/internal/model"
)

// MessageRepo implements MessageStore on MySQL.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

const messageCols = "id,author_id,author,title,content,created_at,updated_at"

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+messageCols+" FROM messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Author, &m.Title, &m.Content, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get fetches a single message by id.
func (r *MessageRepo) Get(ctx context.Context, id uint64) (model.Message, error) {
	var m model.Message
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+messageCols+" FROM messages WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.AuthorID, &m.Author, &m.Title, &m.Content, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

// Create inserts a message and fills in its id.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (author_id, author, title, content) VALUES (?,?,?,?)",
		m.AuthorID, m.Author, m.Title, m.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update edits a message if the caller authored it. Returns
// ErrForbidden on an ownership mismatch and ErrNotFound for an
// unknown id.
func (r *MessageRepo) Update(ctx context.Context, id, authorID uint64, title, content string) (model.Message, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return model.Message{}, err
	}
	if existing.AuthorID != authorID {
		return model.Message{}, ErrForbidden
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET title=?, content=? WHERE id=?", title, content, id); err != nil {
		return model.Message{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes a message if the caller authored it.
func (r *MessageRepo) Delete(ctx context.Context, id, authorID uint64) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM messages WHERE id=?", id)
	return err
}
