package domain

import "context"

// CatalogSource supplies the product list. Read-only, queried once per
// process and safely shared by all sessions.
type CatalogSource interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id ProductID) (Product, error)
}

// TextGenerator is the upstream generative-text API as seen by the
// gateway. The gateway is the only component holding its credential.
type TextGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// ReplyGateway is the gateway as seen by the proxy client: one opaque
// prompt in, one reply string out. Implementations must collapse every
// transport or server-error outcome into ErrGatewayUnavailable.
type ReplyGateway interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// SessionStore owns session state. Mutate runs fn under the store's lock,
// so no two mutations of a session interleave; Get returns a snapshot.
type SessionStore interface {
	Create(session *Session) error
	Get(id SessionID) (*Session, error)
	Mutate(id SessionID, fn func(*Session) error) error
}

// TurnStore is the append-only chat log. Turns are never deleted or
// reordered within a session's lifetime.
type TurnStore interface {
	Append(turn *ConversationTurn) error
	List(id SessionID) ([]*ConversationTurn, error)
}

// Transcriber captures speech and returns draft text for the next user
// turn. Implementations without the capability return ErrVoiceUnavailable.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}
