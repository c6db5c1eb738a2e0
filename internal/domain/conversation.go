package domain

// ConversationTurn is one entry in a session's chat log, either from the
// user or from the assistant. Turns are only ever appended, never edited
// or removed.
type ConversationTurn struct {
	SessionID SessionID
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// Session is the state owned by one storefront visit: its cart, its liked
// products and its chat log (kept in the turn store keyed by session id).
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	Cart  Cart
	Likes map[ProductID]bool
}

// ToggleLike flips the liked flag for a product. Likes are independent of
// cart membership and have no effect on pricing or checkout.
func (s *Session) ToggleLike(id ProductID) {
	if s.Likes == nil {
		s.Likes = make(map[ProductID]bool)
	}
	s.Likes[id] = !s.Likes[id]
}

// Clone returns a snapshot safe to read outside the store lock.
func (s *Session) Clone() *Session {
	out := &Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Cart:      s.Cart.Clone(),
	}
	if len(s.Likes) > 0 {
		out.Likes = make(map[ProductID]bool, len(s.Likes))
		for k, v := range s.Likes {
			out.Likes[k] = v
		}
	}
	return out
}
