package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leiwang08/docqa/internal/adapter/document"
	"github.com/leiwang08/docqa/internal/adapter/llm"
	"github.com/leiwang08/docqa/internal/config"
	store "github.com/leiwang08/docqa/internal/repository"
	"github.com/leiwang08/docqa/internal/service"
	"github.com/leiwang08/docqa/internal/session"
	"github.com/leiwang08/docqa/policy"
)

type scriptedLLM struct {
	reply string
	err   error
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *scriptedLLM) ListModels(ctx context.Context) ([]llm.Model, error) {
	return []llm.Model{{Name: "test-model"}}, nil
}

type scriptedFetcher struct {
	text string
	err  error
}

func (f *scriptedFetcher) FetchAndExtract(ctx context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestHandler(t *testing.T, client llm.LLMClient, fetcher service.DocumentFetcher) *Handler {
	t.Helper()

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to build policy engine: %v", err)
	}

	cfg := &config.Config{Model: "test-model"}
	svc := service.New(session.NewStore(), db, fetcher, client, engine, cfg)
	return NewHandler(svc)
}

func doJSON(t *testing.T, handler func(echo.Context) error, method, target, body string, params ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func TestChatHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "Hi there!"}, &scriptedFetcher{})

	rec, body := doJSON(t, h.Chat, http.MethodPost, "/api/chat",
		`{"session_id":"s1","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["message"] != "Hi there!" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if body["session_id"] != "s1" {
		t.Errorf("unexpected session_id: %v", body["session_id"])
	}
	if body["conversation_length"] != float64(2) {
		t.Errorf("unexpected conversation_length: %v", body["conversation_length"])
	}
}

func TestChatHandlerDefaultsSessionID(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	_, body := doJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"message":"Hello"}`)

	if body["session_id"] != "default" {
		t.Errorf("expected default session id, got %v", body["session_id"])
	}
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	rec, body := doJSON(t, h.Chat, http.MethodPost, "/api/chat",
		`{"session_id":"s1","message":"   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error_type"] != "InputError" {
		t.Errorf("unexpected error_type: %v", body["error_type"])
	}
}

func TestChatHandlerModelFailure(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{err: errors.New("model down")}, &scriptedFetcher{})

	rec, body := doJSON(t, h.Chat, http.MethodPost, "/api/chat",
		`{"session_id":"s1","message":"Hello"}`)

	// Chat failures are reported in the envelope, not via HTTP status.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if body["message"] != service.FallbackMessage {
		t.Errorf("expected fallback message, got %v", body["message"])
	}
}

func TestChatWithPDFHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "about the doc"}, &scriptedFetcher{text: "doc text"})

	rec, body := doJSON(t, h.ChatWithPDF, http.MethodPost, "/api/chat/pdf",
		`{"session_id":"s1","pdf_url":"https://example.com/a.pdf","message":"What is this?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["has_document_context"] != true {
		t.Errorf("expected has_document_context=true, got %v", body["has_document_context"])
	}
	if body["document_url"] != "https://example.com/a.pdf" {
		t.Errorf("unexpected document_url: %v", body["document_url"])
	}
}

func TestChatWithPDFHandlerRejectsBadURL(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{text: "doc"})

	rec, body := doJSON(t, h.ChatWithPDF, http.MethodPost, "/api/chat/pdf",
		`{"session_id":"s1","pdf_url":"ftp://example.com/a.pdf","message":"hi"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error_type"] != "InputError" {
		t.Errorf("unexpected error_type: %v", body["error_type"])
	}
}

func TestChatWithPDFHandlerFetchFailure(t *testing.T) {
	fetcher := &scriptedFetcher{err: &document.FetchError{Kind: document.KindNotFound, Msg: "PDF not found at URL"}}
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, fetcher)

	rec, body := doJSON(t, h.ChatWithPDF, http.MethodPost, "/api/chat/pdf",
		`{"session_id":"s1","pdf_url":"https://example.com/gone.pdf","message":"hi"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error_type"] != "PDFProcessingError" {
		t.Errorf("unexpected error_type: %v", body["error_type"])
	}
}

func TestChatWithPDFHandlerPolicyBlock(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{text: "doc"})

	rec, body := doJSON(t, h.ChatWithPDF, http.MethodPost, "/api/chat/pdf",
		`{"session_id":"s1","pdf_url":"http://169.254.169.254/latest.pdf","message":"hi"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body["error_type"] != "PolicyError" {
		t.Errorf("unexpected error_type: %v", body["error_type"])
	}
}

func TestAnswerQuestionsHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "42"}, &scriptedFetcher{text: "doc text"})

	rec, body := doJSON(t, h.AnswerQuestions, http.MethodPost, "/aibattle",
		`{"pdf_url":"https://example.com/a.pdf","questions":["q1","q2"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	answers, ok := body["answers"].([]interface{})
	if !ok {
		t.Fatalf("expected answers array, got %v", body)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if len(body) != 1 {
		t.Errorf("response must contain only the answers field, got %v", body)
	}
}

func TestAnswerQuestionsHandlerValidation(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "42"}, &scriptedFetcher{text: "doc"})

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{"questions":["q"]}`},
		{"bad scheme", `{"pdf_url":"file:///etc/passwd","questions":["q"]}`},
		{"no questions", `{"pdf_url":"https://example.com/a.pdf","questions":[]}`},
		{"only blank questions", `{"pdf_url":"https://example.com/a.pdf","questions":["  ",""]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, h.AnswerQuestions, http.MethodPost, "/aibattle", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if body["error_type"] != "InputError" {
				t.Errorf("unexpected error_type: %v", body["error_type"])
			}
		})
	}
}

func TestAnswerQuestionsHandlerTooManyQuestions(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "42"}, &scriptedFetcher{text: "doc"})

	questions := make([]string, 21)
	for i := range questions {
		questions[i] = "q"
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"pdf_url":   "https://example.com/a.pdf",
		"questions": questions,
	})

	rec, _ := doJSON(t, h.AnswerQuestions, http.MethodPost, "/aibattle", string(payload))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnswerQuestionsHandlerModelFailure(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{err: errors.New("model down")}, &scriptedFetcher{text: "doc"})

	rec, body := doJSON(t, h.AnswerQuestions, http.MethodPost, "/aibattle",
		`{"pdf_url":"https://example.com/a.pdf","questions":["q"]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error_type"] != "AIProcessingError" {
		t.Errorf("unexpected error_type: %v", body["error_type"])
	}
}

func TestGetChatHistoryHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	// Seed a conversation.
	doJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"session_id":"s1","message":"Hello"}`)

	rec, body := doJSON(t, h.GetChatHistory, http.MethodGet, "/api/chat/history/s1", "",
		"session_id", "s1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body)
	}
	if body["message_count"] != float64(2) {
		t.Errorf("expected message_count=2, got %v", body["message_count"])
	}
}

func TestGetChatHistoryHandlerUnknownSession(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	rec, body := doJSON(t, h.GetChatHistory, http.MethodGet, "/api/chat/history/nope", "",
		"session_id", "nope")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body)
	}
	if body["error"] != "Session not found" {
		t.Errorf("unexpected error: %v", body["error"])
	}
}

func TestClearChatSessionHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	doJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"session_id":"s1","message":"Hello"}`)

	_, body := doJSON(t, h.ClearChatSession, http.MethodDelete, "/api/chat/session/s1", "",
		"session_id", "s1")
	if body["success"] != true || body["message"] != "Session cleared" {
		t.Errorf("unexpected response: %v", body)
	}

	_, body = doJSON(t, h.ClearChatSession, http.MethodDelete, "/api/chat/session/s1", "",
		"session_id", "s1")
	if body["success"] != false || body["message"] != "Session not found" {
		t.Errorf("unexpected response after clear: %v", body)
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	rec, body := doJSON(t, h.Health, http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body["status"])
	}
	if body["model"] != "test-model" {
		t.Errorf("unexpected model: %v", body["model"])
	}
}

func TestStatsHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	doJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"session_id":"s1","message":"Hello"}`)

	rec, body := doJSON(t, h.Stats, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["sessions"] != float64(1) {
		t.Errorf("expected 1 session, got %v", body["sessions"])
	}
	requests, ok := body["requests"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected requests object, got %v", body)
	}
	if requests["total_requests"] != float64(1) {
		t.Errorf("expected 1 audited request, got %v", requests["total_requests"])
	}
}

func TestRootHandler(t *testing.T) {
	h := newTestHandler(t, &scriptedLLM{reply: "ok"}, &scriptedFetcher{})

	rec, body := doJSON(t, h.Root, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["version"] != Version {
		t.Errorf("unexpected version: %v", body["version"])
	}
}
