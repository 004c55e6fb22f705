package auth

import (
	"context"
	"sync"

	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

// InMemorySessionStore keeps sessions for the default single-process
// deployment. It intentionally favors clarity over performance.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.SessionID]Session)}
}

func (s *InMemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}
	return Session{}, sentinel.ErrNotFound
}

func (s *InMemorySessionStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
