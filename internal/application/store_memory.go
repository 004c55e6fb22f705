package application

import (
	"context"
	"sync"

	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

// InMemory keeps applications in a newest-first slice with an ID index.
// The slice preserves the presentation order the admin console expects;
// the map keeps lookups constant-time.
type InMemory struct {
	mu      sync.RWMutex
	ordered []id.ApplicationID
	byID    map[id.ApplicationID]Application
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.ApplicationID]Application)}
}

func (s *InMemory) Insert(_ context.Context, app Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[app.ID] = app
	s.ordered = append([]id.ApplicationID{app.ID}, s.ordered...)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, appID id.ApplicationID) (Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.byID[appID]; ok {
		return app, nil
	}
	return Application{}, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Application, 0, len(s.ordered))
	for _, appID := range s.ordered {
		out = append(out, s.byID[appID])
	}
	return out, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Application
	for _, appID := range s.ordered {
		if app := s.byID[appID]; app.UserID == userID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, appID id.ApplicationID, validate func(*Application) error, mutate func(*Application)) (Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.byID[appID]
	if !ok {
		return Application{}, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&app); err != nil {
			return Application{}, err
		}
	}
	if mutate != nil {
		mutate(&app)
	}
	s.byID[appID] = app
	return app, nil
}
