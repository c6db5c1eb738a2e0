package memory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendify/storefront/internal/adapters/storage/memory"
	"github.com/trendify/storefront/internal/domain"
)

func TestSessionStoreGetReturnsSnapshot(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.Create(&domain.Session{ID: "s1"}))

	snap, err := store.Get("s1")
	require.NoError(t, err)
	snap.Cart.AddLine(1)

	fresh, err := store.Get("s1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Cart.Lines, "mutating a snapshot must not leak into the store")
}

func TestSessionStoreMutate(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.Create(&domain.Session{ID: "s1"}))

	err := store.Mutate("s1", func(s *domain.Session) error {
		s.Cart.AddLine(1)
		return nil
	})
	require.NoError(t, err)

	sess, err := store.Get("s1")
	require.NoError(t, err)
	require.Len(t, sess.Cart.Lines, 1)

	err = store.Mutate("missing", func(s *domain.Session) error { return nil })
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestConcurrentMutationsDoNotInterleave(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.Create(&domain.Session{ID: "s1"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Mutate("s1", func(s *domain.Session) error {
				s.Cart.AddLine(1)
				return nil
			})
		}()
	}
	wg.Wait()

	sess, err := store.Get("s1")
	require.NoError(t, err)
	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, 50, sess.Cart.Lines[0].Quantity)
}

func TestTurnStoreAppendOnly(t *testing.T) {
	store := memory.NewTurnStore()

	require.NoError(t, store.Append(&domain.ConversationTurn{SessionID: "s1", Role: domain.RoleAssistant, Text: "hi"}))
	require.NoError(t, store.Append(&domain.ConversationTurn{SessionID: "s1", Role: domain.RoleUser, Text: "hello"}))

	turns, err := store.List("s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
	assert.Equal(t, domain.RoleUser, turns[1].Role)

	other, err := store.List("s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
