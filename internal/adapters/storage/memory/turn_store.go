package memory

import (
	"sync"

	"github.com/trendify/storefront/internal/domain"
)

// TurnStore is the append-only chat log, keyed by session. Append is the
// only mutation, so concurrent sends can interleave without corrupting
// the sequence.
type TurnStore struct {
	mu    sync.RWMutex
	turns map[domain.SessionID][]*domain.ConversationTurn
}

func NewTurnStore() *TurnStore {
	return &TurnStore{
		turns: make(map[domain.SessionID][]*domain.ConversationTurn),
	}
}

func (s *TurnStore) Append(turn *domain.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], turn)
	return nil
}

func (s *TurnStore) List(id domain.SessionID) ([]*domain.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[id]
	out := make([]*domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}
