package domain

import "time"

// Challenge is a short-lived one-time login code, held only in process
// memory and keyed by account email. At most one challenge is live per
// email: issuing a new one replaces the prior one. Lost on restart by
// design.
type Challenge struct {
	Email     string
	Code      string // 6-digit numeric string
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
