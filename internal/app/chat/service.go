package chat

import (
	"context"
	"strings"
	"time"

	"github.com/trendify/storefront/internal/domain"
	"github.com/trendify/storefront/internal/observability"
)

const (
	// greeting seeds every new session's chat log.
	greeting = "Hi 👋 I'm your shopping assistant!"

	// errorFallback is appended as the assistant turn whenever the
	// gateway call fails; the failure never propagates further.
	errorFallback = "Error fetching AI"
)

// Service owns the session lifecycle and the chat proxy flow: it appends
// turns to the append-only log and mediates between the conversation and
// the AI gateway.
type Service struct {
	gateway  domain.ReplyGateway
	sessions domain.SessionStore
	turns    domain.TurnStore
	now      func() time.Time
}

func NewService(gateway domain.ReplyGateway, sessions domain.SessionStore, turns domain.TurnStore) *Service {
	return &Service{
		gateway:  gateway,
		sessions: sessions,
		turns:    turns,
		now:      time.Now,
	}
}

// StartSession creates a fresh session with an empty cart and seeds the
// chat log with the assistant greeting.
func (s *Service) StartSession(ctx context.Context) (*domain.Session, []*domain.ConversationTurn, error) {
	now := s.now()

	session := &domain.Session{
		ID:        domain.SessionID(generateID(now)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, nil, err
	}

	welcome := &domain.ConversationTurn{
		SessionID: session.ID,
		Role:      domain.RoleAssistant,
		Text:      greeting,
		CreatedAt: now,
	}
	if err := s.turns.Append(welcome); err != nil {
		return nil, nil, err
	}

	observability.LoggerFromContext(ctx).Info("session started", "session_id", session.ID)

	return session, []*domain.ConversationTurn{welcome}, nil
}

type SendOutput struct {
	UserTurn      *domain.ConversationTurn
	AssistantTurn *domain.ConversationTurn
}

// Send appends the user turn, proxies it to the gateway and appends the
// assistant turn. Empty or whitespace-only text is rejected before any
// mutation. A failed gateway call still produces an assistant turn, with
// the fixed fallback text; the caller sees no error for that case.
func (s *Service) Send(ctx context.Context, sessionID domain.SessionID, text string) (*SendOutput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	userTurn := &domain.ConversationTurn{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.turns.Append(userTurn); err != nil {
		return nil, err
	}

	// The gateway call is the only point this flow suspends. No lock is
	// held here, so cart operations stay live while a reply is in flight.
	replyText, err := s.gateway.Reply(ctx, buildPrompt(text))
	if err != nil {
		log.Warn("gateway call failed", "err", err)
		replyText = errorFallback
	} else {
		replyText = sanitizeReply(replyText)
	}

	assistantTurn := &domain.ConversationTurn{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Text:      replyText,
		CreatedAt: s.now(),
	}
	if err := s.turns.Append(assistantTurn); err != nil {
		return nil, err
	}

	return &SendOutput{UserTurn: userTurn, AssistantTurn: assistantTurn}, nil
}

// Timeline returns the full ordered turn sequence for rendering.
func (s *Service) Timeline(ctx context.Context, sessionID domain.SessionID) ([]*domain.ConversationTurn, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	return s.turns.List(sessionID)
}

// sanitizeReply strips emphasis-marker characters and surrounding
// whitespace. Runs on every successful reply before it is stored.
func sanitizeReply(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "*", ""))
}

// TODO: replace with something like UUID
func generateID(t time.Time) string {
	return t.Format("20060102150405.000000000")
}
