package user

import (
	"context"

	id "oscahub/pkg/domain"
)

// Store persists users. The portal's system of record is the local store;
// remote replication is best-effort and never consulted for reads.
type Store interface {
	Save(ctx context.Context, u User) error
	FindByID(ctx context.Context, userID id.UserID) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)

	// Execute runs validate-then-mutate atomically under the store's lock,
	// returning the updated user. Sentinel not-found when the ID is unknown.
	Execute(ctx context.Context, userID id.UserID, validate func(*User) error, mutate func(*User)) (User, error)
}
