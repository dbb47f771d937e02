package domain

// ChatResult is the outcome of one chat turn. On failure, Error carries the
// underlying cause and Message a generic apology; the session keeps the user
// message either way.
type ChatResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	SessionID          string `json:"session_id"`
	HasDocumentContext bool   `json:"has_document_context"`
	DocumentURL        string `json:"document_url,omitempty"`
	ConversationLength int    `json:"conversation_length,omitempty"`
	Error              string `json:"error,omitempty"`
}
