// Package domain defines the request and response envelopes of the service.
package domain

import (
	"errors"
	"strings"
)

// MaxQuestions is the upper bound on questions per batch request.
const MaxQuestions = 20

// DefaultSessionID is used when a chat request omits the session identifier.
const DefaultSessionID = "default"

// QuestionRequest is the batch question-answering request payload.
type QuestionRequest struct {
	PDFURL    string   `json:"pdf_url"`
	Questions []string `json:"questions"`
}

// Normalize trims questions and drops empty ones.
func (r *QuestionRequest) Normalize() {
	kept := r.Questions[:0]
	for _, q := range r.Questions {
		q = strings.TrimSpace(q)
		if q != "" {
			kept = append(kept, q)
		}
	}
	r.Questions = kept
}

// Validate reports the first input problem. It must be called after Normalize.
func (r *QuestionRequest) Validate() error {
	if err := ValidatePDFURL(r.PDFURL); err != nil {
		return err
	}
	if len(r.Questions) == 0 {
		return errors.New("at least one question is required")
	}
	if len(r.Questions) > MaxQuestions {
		return errors.New("maximum 20 questions allowed")
	}
	return nil
}

// ValidatePDFURL rejects URLs that are not plain web URLs. This is the input
// check applied before any collaborator is invoked.
func ValidatePDFURL(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.New("pdf_url must start with http:// or https://")
	}
	return nil
}

// AnswerResponse is the strict batch-answer envelope: one string per question,
// in question order, and nothing else.
type AnswerResponse struct {
	Answers []string `json:"answers"`
}

// ChatRequest is the plain chat request payload.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatPDFRequest is the chat-with-document request payload.
type ChatPDFRequest struct {
	SessionID string `json:"session_id"`
	PDFURL    string `json:"pdf_url"`
	Message   string `json:"message"`
}

// ErrorResponse is the error envelope for rejected or failed requests.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
	Details   string `json:"details,omitempty"`
}
