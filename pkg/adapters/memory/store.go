// Package memory provides the in-process session store.
package memory

import (
	"context"
	"sync"

	"github.com/askarpov/farebot/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[int64]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[int64]*domain.Session),
	}
}

// Save persists the session, replacing any previous one for the same user.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	// Store a copy so the caller can't mutate stored state by pointer.
	copied := *sess

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.UserID] = &copied
	return nil
}

// Load retrieves the session for a user.
func (s *Store) Load(ctx context.Context, userID int64) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	ret := *sess
	return &ret, nil
}

// Delete removes the session for a user.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// List returns the user IDs with an active session.
func (s *Store) List(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]int64, 0, len(s.data))
	for id := range s.data {
		users = append(users, id)
	}
	return users, nil
}
