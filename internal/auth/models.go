// Package auth implements portal login: a remote-first credential check
// against the external authentication backend with a local bcrypt
// fallback, JWT issuance, and session tracking.
package auth

import (
	"time"

	"oscahub/internal/user"
	id "oscahub/pkg/domain"
)

// Session records an authenticated login.
type Session struct {
	ID        id.SessionID `json:"id"`
	UserID    id.UserID    `json:"userId"`
	Username  string       `json:"username"`
	Role      user.Role    `json:"role"`
	ClientIP  string       `json:"clientIp,omitempty"`
	UserAgent string       `json:"userAgent,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Expired reports whether the session has outlived its token.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// LoginResult is what a successful login hands back to the transport
// layer. A failed credential check yields no result and no error.
type LoginResult struct {
	User    user.User
	Token   string
	Session Session
}
