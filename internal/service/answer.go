package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/leiwang08/docqa/internal/adapter/llm"
	"github.com/leiwang08/docqa/internal/prompt"
)

// noAnswerFallback fills in for questions the model answered with nothing.
const noAnswerFallback = "The document does not provide an answer to this question."

// AnswerQuestions downloads the PDF at pdfURL, extracts its text, and produces
// exactly one answer per question, in question order. Questions must already
// be validated. The first failing model call aborts the batch; there are no
// retries.
func (s *Service) AnswerQuestions(ctx context.Context, pdfURL string, questions []string) ([]string, error) {
	start := time.Now()

	text, err := s.fetcher.FetchAndExtract(ctx, pdfURL)
	if err != nil {
		s.recordRequest(ctx, "aibattle", "", pdfURL, len(questions), start, false, err.Error())
		return nil, err
	}
	log.Printf("PDF processed successfully, text length: %d characters", len(text))

	answers := make([]string, len(questions))
	for i, q := range questions {
		completion, err := s.llmClient.Generate(ctx, prompt.ForAnswer(text, q), llm.AnswerOptions)
		if err != nil {
			s.recordRequest(ctx, "aibattle", "", pdfURL, len(questions), start, false, err.Error())
			return nil, fmt.Errorf("generating answer %d/%d: %w", i+1, len(questions), err)
		}
		answer := llm.StripReasoning(completion)
		if answer == "" {
			answer = noAnswerFallback
		}
		answers[i] = answer
	}

	s.recordRequest(ctx, "aibattle", "", pdfURL, len(questions), start, true, "")
	return answers, nil
}
