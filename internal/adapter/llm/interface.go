// Package llm provides an abstraction for language model clients.
package llm

import "context"

// Options are generation parameters passed through to the model.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// ChatOptions are the fixed generation settings for conversational turns.
var ChatOptions = Options{Temperature: 0.7, TopP: 0.9, MaxTokens: 500}

// AnswerOptions are the fixed generation settings for document question
// answering, biased toward factual output.
var AnswerOptions = Options{Temperature: 0.3, TopP: 0.9, MaxTokens: 500}

// Model describes an installed model.
type Model struct {
	Name       string `json:"name"`
	Size       int64  `json:"size,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// LLMClient defines the interface for language model operations.
type LLMClient interface {
	// Generate produces a single completion for the prompt.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	// ListModels retrieves the list of available models.
	ListModels(ctx context.Context) ([]Model, error)
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
