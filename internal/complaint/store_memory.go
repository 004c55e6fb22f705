package complaint

import (
	"context"
	"sync"

	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

// InMemory keeps complaints newest-first, mirroring the application store.
type InMemory struct {
	mu      sync.RWMutex
	ordered []id.ComplaintID
	byID    map[id.ComplaintID]Complaint
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.ComplaintID]Complaint)}
}

func (s *InMemory) Insert(_ context.Context, c Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[c.ID] = c
	s.ordered = append([]id.ComplaintID{c.ID}, s.ordered...)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, complaintID id.ComplaintID) (Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.byID[complaintID]; ok {
		return c, nil
	}
	return Complaint{}, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Complaint, 0, len(s.ordered))
	for _, complaintID := range s.ordered {
		out = append(out, s.byID[complaintID])
	}
	return out, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Complaint
	for _, complaintID := range s.ordered {
		if c := s.byID[complaintID]; c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, complaintID id.ComplaintID, validate func(*Complaint) error, mutate func(*Complaint)) (Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[complaintID]
	if !ok {
		return Complaint{}, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&c); err != nil {
			return Complaint{}, err
		}
	}
	if mutate != nil {
		mutate(&c)
	}
	s.byID[complaintID] = c
	return c, nil
}
