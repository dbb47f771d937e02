package service

import (
	"context"
	"log"
	"time"

	"github.com/leiwang08/docqa/internal/adapter/llm"
	"github.com/leiwang08/docqa/internal/domain"
	"github.com/leiwang08/docqa/internal/prompt"
	"github.com/leiwang08/docqa/internal/session"
)

// FallbackMessage is returned in place of a reply when the model call fails.
const FallbackMessage = "Sorry, I encountered an error processing your message."

// Chat runs one conversation turn for the session. The user message is
// recorded before the model call, so a model failure still leaves it in
// history; a failed turn appends no assistant message.
func (s *Service) Chat(ctx context.Context, sessionID, userMessage string, useDocumentContext bool) *domain.ChatResult {
	start := time.Now()
	sess := s.sessions.GetOrCreate(sessionID)
	sess.AddMessage(session.RoleUser, userMessage)

	docSource, docText, _ := sess.Document()
	p := prompt.ForChat(sess.Messages(), docSource, docText, useDocumentContext, userMessage)

	reply, err := s.llmClient.Generate(ctx, p, llm.ChatOptions)
	if err != nil {
		log.Printf("ERROR: chat generation failed for session %s: %v", sessionID, err)
		s.recordRequest(ctx, "chat", sessionID, "", 0, start, false, err.Error())
		return &domain.ChatResult{
			Success:   false,
			Error:     err.Error(),
			Message:   FallbackMessage,
			SessionID: sessionID,
		}
	}

	reply = llm.StripReasoning(reply)
	sess.AddMessage(session.RoleAssistant, reply)
	s.recordRequest(ctx, "chat", sessionID, "", 0, start, true, "")

	docSource, _, hasDoc := sess.Document()
	return &domain.ChatResult{
		Success:            true,
		Message:            reply,
		SessionID:          sessionID,
		HasDocumentContext: hasDoc,
		DocumentURL:        docSource,
		ConversationLength: sess.Len(),
	}
}

// ChatWithDocument binds the document at pdfURL to the session if it is not
// already bound to that exact source, then runs a chat turn with document
// context enabled. A fetch or extraction failure is returned as-is so callers
// can distinguish a bad document from a failed model call; the session's
// existing binding is left untouched in that case.
func (s *Service) ChatWithDocument(ctx context.Context, sessionID, pdfURL, userMessage string) (*domain.ChatResult, error) {
	sess := s.sessions.GetOrCreate(sessionID)

	if sess.DocumentSource() != pdfURL {
		start := time.Now()
		text, err := s.fetcher.FetchAndExtract(ctx, pdfURL)
		if err != nil {
			s.recordRequest(ctx, "chat_pdf", sessionID, pdfURL, 0, start, false, err.Error())
			return nil, err
		}
		sess.BindDocument(pdfURL, text)
		log.Printf("document bound to session %s: %s (%d chars)", sessionID, pdfURL, len(text))
	}

	return s.Chat(ctx, sessionID, userMessage, true), nil
}

// GetHistory returns the session's messages in order. ok is false when the
// session does not exist; looking up history never creates a session.
func (s *Service) GetHistory(sessionID string) ([]session.Message, bool) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, false
	}
	return sess.Messages(), true
}

// ClearSession removes the session and reports whether one existed.
func (s *Service) ClearSession(sessionID string) bool {
	return s.sessions.Delete(sessionID)
}
