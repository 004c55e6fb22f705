package complaint

import (
	"context"

	id "oscahub/pkg/domain"
)

type Store interface {
	Insert(ctx context.Context, c Complaint) error
	FindByID(ctx context.Context, complaintID id.ComplaintID) (Complaint, error)
	List(ctx context.Context) ([]Complaint, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]Complaint, error)
	Execute(ctx context.Context, complaintID id.ComplaintID, validate func(*Complaint) error, mutate func(*Complaint)) (Complaint, error)
}
