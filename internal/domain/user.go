package domain

import "time"

// Account roles. Roles are flat strings, not a table: the service only
// distinguishes staff from administrators.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Email is unique across the store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // argon2id PHC encoded
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
