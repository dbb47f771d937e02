// Package session holds in-memory conversation state keyed by caller-supplied
// session identifiers. Sessions live for the lifetime of the process.
package session

import (
	"sync"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one ongoing conversation. The message sequence is append-only;
// individual messages are never reordered or removed.
type Session struct {
	mu             sync.Mutex
	id             string
	messages       []Message
	documentText   string
	documentSource string
	createdAt      time.Time
	lastUpdated    time.Time
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		id:          id,
		createdAt:   now,
		lastUpdated: now,
	}
}

// ID returns the caller-supplied session identifier.
func (s *Session) ID() string {
	return s.id
}

// AddMessage appends a message to the conversation history.
func (s *Session) AddMessage(role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.lastUpdated = now
}

// BindDocument associates the session with a document's extracted text and its
// source URL. Any prior binding is replaced; source and text always change
// together so the session never holds a partial binding.
func (s *Session) BindDocument(source, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentSource = source
	s.documentText = text
	s.lastUpdated = time.Now()
}

// Document returns the bound document source and text. ok is false when the
// session has no bound document.
func (s *Session) Document() (source, text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentSource, s.documentText, s.documentText != ""
}

// DocumentSource returns the URL of the bound document, or "" when none is
// bound. Used by the binding decision: a document is re-fetched only when the
// requested source differs from this value by exact string comparison.
func (s *Session) DocumentSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentSource
}

// Messages returns a copy of the conversation history in insertion order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len returns the number of messages in the conversation.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdAt
}

// LastUpdated returns the time of the last mutation.
func (s *Session) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}
