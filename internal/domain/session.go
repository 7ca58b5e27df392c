package domain

// Session is the result of a completed two-step login: a signed stateless
// bearer token plus the account fields clients render.
type Session struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"` // seconds until token expiry
}
