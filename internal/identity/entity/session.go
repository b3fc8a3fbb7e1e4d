package entity

import "time"

// PendingSignup is a signup form that has not been confirmed by OTP yet.
type PendingSignup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Challenge is the active OTP of a session. Only the digest is kept.
type Challenge struct {
	CodeHash string    `json:"code_hash"`
	IssuedAt time.Time `json:"issued_at"`
}

// Expired reports whether the challenge is older than ttl at now. A missing
// challenge counts as expired.
func (c *Challenge) Expired(now time.Time, ttl time.Duration) bool {
	return c == nil || now.Sub(c.IssuedAt) > ttl
}

// Session is the per-visitor state keyed by the session cookie.
type Session struct {
	ID          string         `json:"-"`
	Signup      *PendingSignup `json:"signup,omitempty"`
	Challenge   *Challenge     `json:"challenge,omitempty"`
	ResendCount int            `json:"resend_count"`
	UserEmail   string         `json:"user_email,omitempty"`
}

// StageSignup replaces any previous signup and resets the OTP state. The
// login marker is left alone.
func (s *Session) StageSignup(p PendingSignup) {
	s.Signup = &p
	s.Challenge = nil
	s.ResendCount = 0
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserEmail != ""
}
