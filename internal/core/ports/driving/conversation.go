package driving

import "github.com/opensquare/opensquare-cli/internal/core/domain"

// ConversationReader exposes the conversation log to the presentation
// layer. The log itself is append-only; readers get snapshots.
type ConversationReader interface {
	// Entries returns a copy of the log in append order.
	Entries() []domain.ConversationEntry

	// Len returns the number of entries.
	Len() int
}
