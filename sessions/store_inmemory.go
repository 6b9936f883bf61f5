package sessions

import (
	"fmt"
	"sync"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore keeps the session for the lifetime of the process only
type InMemoryStore struct {
	mu      sync.RWMutex
	session Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = newSession(token)
	return nil
}

func (s *InMemoryStore) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token, s.session.Token != ""
}

func (s *InMemoryStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.UserID
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	return nil
}
