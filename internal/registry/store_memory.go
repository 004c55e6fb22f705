package registry

import (
	"context"
	"strings"
	"sync"

	"oscahub/pkg/platform/sentinel"
)

// InMemory holds the seeded registry. Lookups are case-insensitive on the
// record ID: the reference registries print IDs in upper case but citizens
// type them however they like.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[string]Record
	ordered []string
}

func NewInMemory(seed []Record) *InMemory {
	s := &InMemory{byID: make(map[string]Record, len(seed))}
	for _, rec := range seed {
		key := strings.ToUpper(rec.ID)
		if _, exists := s.byID[key]; exists {
			continue
		}
		s.byID[key] = rec
		s.ordered = append(s.ordered, key)
	}
	return s
}

func (s *InMemory) FindByID(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.byID[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return rec, nil
	}
	return Record{}, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.ordered))
	for _, key := range s.ordered {
		out = append(out, s.byID[key])
	}
	return out, nil
}

// MarkHasAccount flips the HasAccount flag after a citizen account is
// provisioned for the person behind the record. The record itself stays
// immutable otherwise.
func (s *InMemory) MarkHasAccount(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToUpper(strings.TrimSpace(id))
	if rec, ok := s.byID[key]; ok {
		rec.HasAccount = true
		s.byID[key] = rec
	}
}
