package domain

import "time"

// PasswordResetToken is a persisted single-use credential permitting a
// password change without prior authentication. Only the SHA-256
// fingerprint of the opaque token is stored; the raw value travels in the
// reset email and nowhere else. Unlike the login challenge it survives a
// restart.
type PasswordResetToken struct {
	ID        string
	TokenHash string // base64url SHA-256 of the opaque token
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
