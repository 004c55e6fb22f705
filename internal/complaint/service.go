package complaint

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
	"oscahub/pkg/requestcontext"
)

// Service owns complaint intake and resolution.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type SubmitInput struct {
	UserID  id.UserID
	Subject string
	Details string
}

// Submit records a complaint: fresh ID, the request day, status open,
// prepended so the newest entry lists first.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Complaint, error) {
	c := Complaint{
		ID:      id.NewComplaintID(),
		UserID:  input.UserID,
		Subject: input.Subject,
		Details: input.Details,
		Status:  StatusOpen,
		Date:    dayOf(requestcontext.Now(ctx)),
	}

	if err := s.store.Insert(ctx, c); err != nil {
		return Complaint{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record complaint")
	}

	s.logger.Info("complaint submitted",
		zap.String("complaint_id", c.ID.String()),
		zap.String("subject", c.Subject),
	)
	return c, nil
}

// Resolve closes an open complaint. Resolving an already-resolved
// complaint is a conflict; an unknown ID is not found.
func (s *Service) Resolve(ctx context.Context, complaintID id.ComplaintID) (Complaint, error) {
	resolved, err := s.store.Execute(ctx, complaintID,
		func(c *Complaint) error { return c.CanResolve() },
		func(c *Complaint) { c.ApplyResolution() },
	)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return Complaint{}, dErrors.New(dErrors.CodeNotFound, "complaint not found")
		case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
			return Complaint{}, dErrors.New(dErrors.CodeConflict, "complaint is already resolved")
		default:
			return Complaint{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve complaint")
		}
	}

	s.logger.Info("complaint resolved",
		zap.String("complaint_id", complaintID.String()))
	return resolved, nil
}

// List returns all complaints, newest first.
func (s *Service) List(ctx context.Context) ([]Complaint, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list complaints")
	}
	return out, nil
}

// ListByUser returns one citizen's complaints, newest first.
func (s *Service) ListByUser(ctx context.Context, userID id.UserID) ([]Complaint, error) {
	out, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list complaints")
	}
	return out, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
