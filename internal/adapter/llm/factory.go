package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvDocqaMode is the environment variable name for mode selection.
	EnvDocqaMode = "DOCQA_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates an LLM client based on the DOCQA_MODE environment
// variable. If DOCQA_MODE=MOCK, returns a MockClient; otherwise returns a real
// Ollama client.
func NewLLMClient(baseURL, model string, timeout time.Duration) LLMClient {
	if os.Getenv(EnvDocqaMode) == ModeMock {
		log.Println("DOCQA_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}

	return NewClient(baseURL, model, timeout)
}
