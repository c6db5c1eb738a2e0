package voice

import (
	"context"

	"github.com/trendify/storefront/internal/domain"
)

// Unsupported is the Transcriber shipped with the server build. Speech
// capture lives in the client environment; the server itself has no
// microphone, so every call reports the capability as unavailable.
type Unsupported struct{}

func NewUnsupported() Unsupported {
	return Unsupported{}
}

func (Unsupported) Transcribe(ctx context.Context) (string, error) {
	return "", domain.ErrVoiceUnavailable
}
