package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a deterministic LLMClient used when the service runs without a
// local Ollama instance.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Generate returns a canned response derived from the prompt's final user turn.
func (m *MockClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	turn := prompt
	if i := strings.LastIndex(prompt, "User: "); i >= 0 {
		turn = prompt[i+len("User: "):]
	}
	turn = strings.TrimSuffix(turn, "\n\nAssistant:")
	if len(turn) > 80 {
		turn = turn[:80]
	}
	return fmt.Sprintf("[mock] You said: %s", strings.TrimSpace(turn)), nil
}

// ListModels returns a single mock model entry.
func (m *MockClient) ListModels(ctx context.Context) ([]Model, error) {
	return []Model{{Name: "mock-model"}}, nil
}
