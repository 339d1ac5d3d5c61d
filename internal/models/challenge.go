package models

import "time"

// Challenge is the server-side record of an outstanding OTP issued for a
// phone number. At most one challenge is live per phone; a new request
// replaces the previous record wholesale. The code itself is never stored,
// only its bcrypt hash.
type Challenge struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"code_hash"`
	Attempts  int       `json:"attempts"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is past its lifetime at the given
// instant.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
