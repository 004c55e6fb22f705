package user

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

// InMemory keeps users in a mutex-guarded map with a username index.
// It intentionally favors clarity over performance.
type InMemory struct {
	mu         sync.RWMutex
	users      map[id.UserID]User
	byUsername map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:      make(map[id.UserID]User),
		byUsername: make(map[string]id.UserID),
	}
}

func (s *InMemory) Save(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.users[u.ID]; ok && prev.Username != "" && prev.Username != u.Username {
		delete(s.byUsername, usernameKey(prev.Username))
	}
	s.users[u.ID] = u
	if u.Username != "" {
		s.byUsername[usernameKey(u.Username)] = u.ID
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byUsername[usernameKey(username)]; ok {
		return s.users[userID], nil
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemory) ListByRole(_ context.Context, role Role) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, userID id.UserID, validate func(*User) error, mutate func(*User)) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&u); err != nil {
			return User{}, err
		}
	}
	if mutate != nil {
		mutate(&u)
	}
	s.users[userID] = u
	if u.Username != "" {
		s.byUsername[usernameKey(u.Username)] = u.ID
	}
	return u, nil
}

func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
