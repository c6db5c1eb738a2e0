package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendify/storefront/internal/adapters/storage/memory"
	chatapp "github.com/trendify/storefront/internal/app/chat"
	"github.com/trendify/storefront/internal/domain"
)

type stubGateway struct {
	reply   string
	err     error
	prompts []string
}

func (g *stubGateway) Reply(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newChatService(t *testing.T, gw domain.ReplyGateway) (*chatapp.Service, domain.SessionID) {
	t.Helper()

	svc := chatapp.NewService(gw, memory.NewSessionStore(), memory.NewTurnStore())
	session, turns, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	require.Len(t, turns, 1)

	return svc, session.ID
}

func TestStartSessionSeedsGreeting(t *testing.T) {
	svc, sid := newChatService(t, &stubGateway{})

	turns, err := svc.Timeline(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Hi 👋 I'm your shopping assistant!", turns[0].Text)
}

func TestSendStripsEmphasisMarkers(t *testing.T) {
	gw := &stubGateway{reply: " *Try X* "}
	svc, sid := newChatService(t, gw)

	out, err := svc.Send(context.Background(), sid, "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, out.UserTurn.Role)
	assert.Equal(t, "hello", out.UserTurn.Text)
	assert.Equal(t, "Try X", out.AssistantTurn.Text)

	turns, err := svc.Timeline(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, turns, 3)
}

func TestSendBuildsPersonaPrompt(t *testing.T) {
	gw := &stubGateway{reply: "ok"}
	svc, sid := newChatService(t, gw)

	_, err := svc.Send(context.Background(), sid, "running shoes under 50")
	require.NoError(t, err)

	require.Len(t, gw.prompts, 1)
	prompt := gw.prompts[0]
	assert.True(t, strings.Contains(prompt, "shopping assistant"))
	assert.True(t, strings.Contains(prompt, `"running shoes under 50"`))
	// The persona block precedes the user query.
	assert.Greater(t, strings.Index(prompt, "running shoes"), strings.Index(prompt, "Guidelines"))
}

func TestSendGatewayFailureAppendsFallback(t *testing.T) {
	gw := &stubGateway{err: domain.ErrGatewayUnavailable}
	svc, sid := newChatService(t, gw)

	out, err := svc.Send(context.Background(), sid, "hello")
	require.NoError(t, err, "a failed gateway call is not an error for the caller")
	assert.Equal(t, "Error fetching AI", out.AssistantTurn.Text)

	// Both turns made it into the log.
	turns, err := svc.Timeline(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, domain.RoleUser, turns[1].Role)
	assert.Equal(t, "Error fetching AI", turns[2].Text)
}

func TestSendRejectsWhitespaceOnlyText(t *testing.T) {
	gw := &stubGateway{reply: "ok"}
	svc, sid := newChatService(t, gw)

	_, err := svc.Send(context.Background(), sid, "   \n\t")
	require.ErrorIs(t, err, domain.ErrEmptyMessage)

	// No turn was appended and no gateway call was made.
	turns, err := svc.Timeline(context.Background(), sid)
	require.NoError(t, err)
	assert.Len(t, turns, 1)
	assert.Empty(t, gw.prompts)
}

func TestSendUnknownSession(t *testing.T) {
	svc, _ := newChatService(t, &stubGateway{reply: "ok"})

	_, err := svc.Send(context.Background(), "missing", "hello")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}
