package application

import (
	"context"

	id "oscahub/pkg/domain"
)

// Store persists applications in submission order, newest first.
type Store interface {
	// Insert prepends the application so the newest entry sits at index 0.
	Insert(ctx context.Context, app Application) error
	FindByID(ctx context.Context, appID id.ApplicationID) (Application, error)
	// List returns all applications, newest first.
	List(ctx context.Context) ([]Application, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]Application, error)

	// Execute runs validate-then-mutate atomically under the store's lock,
	// replacing the record in place and leaving every other application
	// untouched. Sentinel not-found when the ID is unknown.
	Execute(ctx context.Context, appID id.ApplicationID, validate func(*Application) error, mutate func(*Application)) (Application, error)
}
