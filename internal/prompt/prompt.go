// Package prompt assembles the text sent to the language model for one turn.
// A prompt is an ordered sequence of labeled sections joined by blank lines:
// system instruction, optional document excerpt, optional recent history, and
// the current user turn with a trailing cue for the model to continue.
package prompt

import (
	"fmt"
	"strings"

	"github.com/leiwang08/docqa/internal/session"
)

const (
	// SystemInstruction describes the assistant's general behavior. It is
	// fixed; callers cannot override it per request.
	SystemInstruction = "You are a helpful AI assistant. Provide clear, accurate, and friendly responses."

	// MaxDocumentChars caps how much of a bound document is embedded in a
	// prompt. The cutoff is a hard character count, not word aware.
	MaxDocumentChars = 10000

	// HistoryWindow caps how many recent messages are rendered into the
	// conversation history block. Older messages are dropped, not summarized.
	HistoryWindow = 10

	sectionSeparator = "\n\n"
)

// Builder accumulates prompt sections in order. The zero value is ready to use.
type Builder struct {
	sections []string
}

// System appends the system instruction section.
func (b *Builder) System(instruction string) {
	b.sections = append(b.sections, instruction)
}

// Section appends a raw labeled section.
func (b *Builder) Section(text string) {
	b.sections = append(b.sections, text)
}

// Document appends a labeled document block naming the source URL. Text beyond
// MaxDocumentChars is cut off.
func (b *Builder) Document(source, text string) {
	if len(text) > MaxDocumentChars {
		text = text[:MaxDocumentChars]
	}
	b.sections = append(b.sections, fmt.Sprintf(
		"You have access to the following document:\nDocument URL: %s\nDocument Content:\n%s\nUse this document to answer questions when relevant.",
		source, text))
}

// History appends a conversation history block rendering the most recent
// HistoryWindow messages, oldest first, one "ROLE: content" line each.
func (b *Builder) History(messages []session.Message) {
	if len(messages) > HistoryWindow {
		messages = messages[len(messages)-HistoryWindow:]
	}
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = strings.ToUpper(string(m.Role)) + ": " + m.Content
	}
	b.sections = append(b.sections, "Conversation History:\n"+strings.Join(lines, "\n"))
}

// UserTurn appends the current user message and the assistant cue.
func (b *Builder) UserTurn(message string) {
	b.sections = append(b.sections, "User: "+message+"\n\nAssistant:")
}

// String joins the accumulated sections with blank lines.
func (b *Builder) String() string {
	return strings.Join(b.sections, sectionSeparator)
}

// ForChat renders the full prompt for one chat turn. messages is the session
// history including the just-appended current user message. The document block
// is included only when requested and a document is bound. The history block is
// included only when the session holds more than the current message; within
// it, the window covers the last HistoryWindow messages of the whole history,
// current message included, so on long conversations the current message also
// appears as the last history line.
func ForChat(messages []session.Message, docSource, docText string, useDocument bool, current string) string {
	var b Builder
	b.System(SystemInstruction)
	if useDocument && docText != "" {
		b.Document(docSource, docText)
	}
	if len(messages) > 1 {
		b.History(messages)
	}
	b.UserTurn(current)
	return b.String()
}

// ForAnswer renders a single-question prompt over an extracted document, used
// by the batch question-answering path. Answers must come from the document.
func ForAnswer(docText, question string) string {
	if len(docText) > MaxDocumentChars {
		docText = docText[:MaxDocumentChars]
	}
	var b Builder
	b.System("You are a precise assistant that answers questions about a document. Answer using only the document content. If the document does not contain the answer, say so briefly. Keep answers concise.")
	b.Section("Document Content:\n" + docText)
	b.Section("Question: " + question + "\n\nAnswer:")
	return b.String()
}
