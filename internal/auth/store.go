package auth

import (
	"context"

	id "oscahub/pkg/domain"
)

// SessionStore persists login sessions. Implementations: in-memory for
// the default single-process deployment, redis when configured.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}
