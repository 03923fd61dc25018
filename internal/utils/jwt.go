package utils // package utils provides helpers for token creation and hashing

import (
	"crypto/rand" // secure random number generation
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT bearer token along with its
// expiry. The token is sent in the Authorization header on every
// protected request and carries the user's id, username and email as
// claims, so handlers never need a users-table lookup to identify the
// caller.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. Standard
// claims: subject (sub) holds the user id, exp/iat the validity
// window; username and email ride along as custom claims. The TTL is
// expressed in hours (24 for this application).
func NewAccessToken(secret string, userID uint64, username, email string, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"email":    email,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewResetToken returns a cryptographically random password-reset
// token: 32 bytes of entropy hex-encoded into exactly 64 characters.
func NewResetToken() (string, error) {
	return randomHex(32)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
