package model

import "time"

// PasswordResetToken models an entry in the `password_resets` table.
// A token is single-use: once redeemed it is marked used and can
// never become valid again. Requesting a new token deletes every
// previous row for the same user, so at most one redeemable token
// exists per account at any time.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  Token     – 64 hex characters (32 bytes of crypto/rand entropy).
//  ExpiresAt – expiration timestamp (issue time + 1 hour).
//  Used      – whether the token has already been redeemed.
//  CreatedAt – timestamp of creation.
type PasswordResetToken struct {
	ID        uint64    // password_resets.id
	UserID    uint64    // password_resets.user_id
	Token     string    // password_resets.token
	ExpiresAt time.Time // password_resets.expires_at
	Used      bool      // password_resets.used
	CreatedAt time.Time // password_resets.created_at
}
