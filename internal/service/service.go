// Package service orchestrates sessions, document fetching, policy checks and
// model calls.
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leiwang08/docqa/internal/adapter/llm"
	"github.com/leiwang08/docqa/internal/config"
	store "github.com/leiwang08/docqa/internal/repository"
	"github.com/leiwang08/docqa/internal/session"
	"github.com/leiwang08/docqa/policy"
)

// DocumentFetcher resolves a URL to extracted PDF text.
type DocumentFetcher interface {
	FetchAndExtract(ctx context.Context, url string) (string, error)
}

// Service wires the session store, collaborators and audit log together.
type Service struct {
	sessions     *session.Store
	store        store.Store
	fetcher      DocumentFetcher
	llmClient    llm.LLMClient
	policyEngine *policy.Engine
	config       *config.Config
}

// New creates a service.
func New(sessions *session.Store, auditStore store.Store, fetcher DocumentFetcher, llmClient llm.LLMClient, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		sessions:     sessions,
		store:        auditStore,
		fetcher:      fetcher,
		llmClient:    llmClient,
		policyEngine: policyEngine,
		config:       cfg,
	}
}

// ModelName returns the configured model name.
func (s *Service) ModelName() string {
	return s.config.Model
}

// VerifyModel reports whether the configured model is installed in Ollama.
func (s *Service) VerifyModel(ctx context.Context) bool {
	models, err := s.llmClient.ListModels(ctx)
	if err != nil {
		return false
	}
	for _, m := range models {
		if m.Name == s.config.Model || strings.HasPrefix(m.Name, s.config.Model+":") {
			return true
		}
	}
	return false
}

// ListModels retrieves the list of available models.
func (s *Service) ListModels(ctx context.Context) ([]llm.Model, error) {
	return s.llmClient.ListModels(ctx)
}

// Stats returns aggregated request-audit totals.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	return s.sessions.Len()
}

// recordRequest writes one audit record. Audit failures are logged, never
// surfaced to the caller.
func (s *Service) recordRequest(ctx context.Context, endpoint, sessionID, pdfURL string, questions int, start time.Time, success bool, errMsg string) {
	rec := &store.RequestRecord{
		RequestID:     "req_" + uuid.New().String()[:8],
		Endpoint:      endpoint,
		SessionID:     sessionID,
		PDFURL:        pdfURL,
		QuestionCount: questions,
		LatencyMs:     time.Since(start).Milliseconds(),
		Success:       success,
		Error:         errMsg,
		CreatedAt:     time.Now(),
	}
	if err := s.store.RecordRequest(ctx, rec); err != nil {
		log.Printf("WARN: failed to record request audit: %v", err)
	}
}
