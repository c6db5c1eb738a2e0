package domain

import "errors"

var (
	// ErrInvalidCoupon reports an unrecognized coupon code. The discount
	// has already been reset to zero when this is returned.
	ErrInvalidCoupon = errors.New("coupon invalid")

	// ErrEmptyCart rejects order placement on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrEmptyMessage rejects empty or whitespace-only chat input.
	ErrEmptyMessage = errors.New("message is empty")

	ErrSessionNotFound = errors.New("session not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrGatewayUnavailable covers any transport or server-error outcome
	// of a gateway call; the proxy client turns it into a fixed fallback
	// assistant turn.
	ErrGatewayUnavailable = errors.New("ai gateway unavailable")

	// ErrVoiceUnavailable reports that no speech-to-text capability is
	// present. Surfaced as a one-shot notice, no fallback transcription.
	ErrVoiceUnavailable = errors.New("voice capture unavailable")
)
