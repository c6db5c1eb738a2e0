package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trendify/storefront/internal/domain"
)

// Client posts prompts to the AI gateway's /api/ai endpoint. It carries no
// upstream credential; the gateway does.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type replyRequest struct {
	Prompt string `json:"prompt"`
}

type replyResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Reply sends {prompt} and returns the reply text. Every transport failure
// and every non-200 status collapses into domain.ErrGatewayUnavailable; the
// gateway's error bodies are generic by contract and not worth surfacing.
func (c *Client) Reply(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(replyRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encoding prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, res.StatusCode)
	}

	var out replyResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding reply: %v", domain.ErrGatewayUnavailable, err)
	}

	return out.Reply, nil
}
