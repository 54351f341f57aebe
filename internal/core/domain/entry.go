package domain

import "time"

// EntryKind classifies a conversation entry.
type EntryKind string

const (
	// EntryUser is a message typed by the user.
	EntryUser EntryKind = "user"

	// EntryAssistant is an answer returned by the backend, with citations.
	EntryAssistant EntryKind = "assistant"

	// EntryError is a failure notice for a chat or upload operation.
	EntryError EntryKind = "error"

	// EntrySuccess is a system notice for a completed operation,
	// such as a finished upload.
	EntrySuccess EntryKind = "success"
)

// Citation references a source document returned alongside an answer.
// Title and Organization are taken verbatim from the backend response.
type Citation struct {
	Title        string
	Organization string
}

// ConversationEntry is one immutable unit of the conversation log.
// Entries are append-only and never mutated after creation; display
// order equals append order.
type ConversationEntry struct {
	// ID is unique and monotonically assignable within a log.
	ID string

	// Kind classifies the entry.
	Kind EntryKind

	// Content is the entry text.
	Content string

	// Sources holds ordered citations; present only for assistant entries.
	Sources []Citation

	// CreatedAt is when the entry was appended.
	CreatedAt time.Time
}

// ChatAnswer is the backend's response to a chat query.
type ChatAnswer struct {
	// Answer is the generated answer text.
	Answer string

	// Sources are the citations backing the answer, in backend order.
	// May be empty.
	Sources []Citation
}
