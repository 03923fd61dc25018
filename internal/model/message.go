package model

import "time"

// Message is a post on the internal message board. Ownership is
// enforced through AuthorID (the authenticated user that created the
// post); Author is only the display name shown to readers.
//
// Fields:
//  ID        – primary key identifier.
//  AuthorID  – user that created the message (references users.id).
//  Author    – display name snapshot taken at creation time.
//  Title     – message title.
//  Content   – message body.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Message struct {
	ID        uint64    // messages.id
	AuthorID  uint64    // messages.author_id
	Author    string    // messages.author
	Title     string    // messages.title
	Content   string    // messages.content
	CreatedAt time.Time // messages.created_at
	UpdatedAt time.Time // messages.updated_at
}
