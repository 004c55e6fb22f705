package registry

import (
	"context"
	"errors"
	"strings"

	dErrors "oscahub/pkg/domain-errors"
	"oscahub/pkg/platform/sentinel"
	"oscahub/pkg/requestcontext"
)

// Service answers identity-verification queries against the reference
// registry. Verification never mutates anything.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Verification is the outcome of an identity check: the matched record plus
// the derived age-eligibility for senior-citizen registration.
type Verification struct {
	Record   Record `json:"record"`
	Eligible bool   `json:"eligible"`
}

// VerifyIdentity matches the given ID against the registry,
// case-insensitively. Unknown IDs translate to a not-found domain error.
func (s *Service) VerifyIdentity(ctx context.Context, id string) (Verification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Verification{}, dErrors.New(dErrors.CodeInvalidInput, "registry id is required")
	}

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Verification{}, dErrors.New(dErrors.CodeNotFound, "no registry record matches the given id")
		}
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "registry lookup failed")
	}

	return Verification{
		Record:   rec,
		Eligible: rec.EligibleAt(requestcontext.Now(ctx)),
	}, nil
}
