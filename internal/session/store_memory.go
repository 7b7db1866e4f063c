package session

import (
	"context"
	"sync"

	"catalog/internal/models"
)

// memoryStore keeps the slot in process memory. Used by tests and ephemeral
// runs where the session should not outlive the process.
type memoryStore struct {
	mu   sync.RWMutex
	user *models.User
}

func (s *memoryStore) Save(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return nil
}

func (s *memoryStore) Load(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
