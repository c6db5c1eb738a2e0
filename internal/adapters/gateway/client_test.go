package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendify/storefront/internal/adapters/gateway"
	"github.com/trendify/storefront/internal/domain"
)

func TestReplySuccess(t *testing.T) {
	var gotPrompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/ai", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body["prompt"]

		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "Try X"})
	}))
	defer ts.Close()

	c := gateway.NewClient(ts.URL)
	reply, err := c.Reply(context.Background(), "some prompt")
	require.NoError(t, err)
	assert.Equal(t, "Try X", reply)
	assert.Equal(t, "some prompt", gotPrompt)
}

func TestReplyServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "AI request failed"})
	}))
	defer ts.Close()

	c := gateway.NewClient(ts.URL)
	_, err := c.Reply(context.Background(), "some prompt")
	require.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestReplyTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	c := gateway.NewClient(ts.URL)
	_, err := c.Reply(context.Background(), "some prompt")
	require.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}
