package service

import (
	"context"
	"fmt"
	"log"
)

// CheckRequestPolicy evaluates the admission policy for a document request
// before any fetch happens. Evaluation errors fail open with a warning; an
// explicit block decision is returned as an error.
func (s *Service) CheckRequestPolicy(ctx context.Context, pdfURL string, questionCount int) error {
	decision, reason, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"pdf_url":        pdfURL,
		"question_count": questionCount,
	})
	if err != nil {
		log.Printf("WARN: policy evaluation failed, allowing request: %v", err)
		return nil
	}
	if decision == "block" {
		if reason == "" {
			reason = "request denied by admission policy"
		}
		return fmt.Errorf("blocked by policy: %s", reason)
	}
	return nil
}
