package llm

import (
	"context"
	"fmt"
)

// MockGenerator is a canned TextGenerator for local development and tests.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	return fmt.Sprintf("Here are a couple of options you might like (mock reply, prompt was %d chars).", len(prompt)), nil
}
