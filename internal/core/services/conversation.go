package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
)

// Ensure ConversationLog implements the reader interface.
var _ driving.ConversationReader = (*ConversationLog)(nil)

// ConversationLog is the shared, ordered log of conversation entries.
// It is owned by the application root and handed to the chat
// orchestrator and upload manager for append-only mutation. Appends
// from concurrent request completions are safe; each appends one
// complete, self-contained entry.
type ConversationLog struct {
	mu      sync.Mutex
	entries []domain.ConversationEntry

	// lastMillis and seq disambiguate IDs for same-millisecond appends.
	lastMillis int64
	seq        int
}

// NewConversationLog creates an empty conversation log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds one immutable entry and returns it with its assigned ID
// and timestamp. Entries are never mutated after this point.
func (l *ConversationLog) Append(kind domain.EntryKind, content string, sources []domain.Citation) domain.ConversationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry := domain.ConversationEntry{
		ID:        l.nextID(now),
		Kind:      kind,
		Content:   content,
		Sources:   sources,
		CreatedAt: now,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// nextID assigns a millisecond-timestamp ID with a sequence suffix to
// break ties for same-millisecond appends. Caller must hold the lock.
func (l *ConversationLog) nextID(now time.Time) string {
	millis := now.UnixMilli()
	if millis == l.lastMillis {
		l.seq++
	} else {
		l.lastMillis = millis
		l.seq = 0
	}
	return fmt.Sprintf("%d-%d", millis, l.seq)
}

// Entries returns a snapshot copy of the log in append order.
func (l *ConversationLog) Entries() []domain.ConversationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]domain.ConversationEntry, len(l.entries))
	copy(snapshot, l.entries)
	return snapshot
}

// Len returns the number of entries.
func (l *ConversationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
