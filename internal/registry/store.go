package registry

import "context"

// Store provides read-only access to seeded registry records.
type Store interface {
	FindByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
