package memory

import (
	"errors"
	"sync"

	"github.com/trendify/storefront/internal/domain"
)

// SessionStore keeps sessions in memory only; carts and orders do not
// survive the process, which is all the storefront needs.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) Create(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return errors.New("session already exists")
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get returns a snapshot, so readers never observe a mutation in progress.
func (s *SessionStore) Get(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Mutate runs fn on the live session under the store lock. This is the
// only write path, so no two mutations of a session interleave.
func (s *SessionStore) Mutate(id domain.SessionID, fn func(*domain.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	return fn(sess)
}
