package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// Ensure ChatOrchestrator implements the interface.
var _ driving.ChatService = (*ChatOrchestrator)(nil)

// chatFailureMessage is the fixed text shown for a failed exchange.
// The underlying cause is logged, not rendered into the conversation.
const chatFailureMessage = "Sorry, I couldn't process your question. Please check the backend connection and try again."

// ChatOrchestrator owns the chat exchange lifecycle. Each Send call
// appends one user entry before dispatch and exactly one terminal
// entry (assistant or error) after, regardless of how concurrent
// calls interleave. Sends are not serialized; terminal entries append
// in arrival order.
type ChatOrchestrator struct {
	backend driven.BackendClient
	log     *ConversationLog

	// inflight counts dispatched queries awaiting a terminal entry.
	inflight atomic.Int64
}

// NewChatOrchestrator creates a chat orchestrator appending to log.
func NewChatOrchestrator(backend driven.BackendClient, log *ConversationLog) *ChatOrchestrator {
	return &ChatOrchestrator{
		backend: backend,
		log:     log,
	}
}

// Send submits one query. The raw input is appended as a user entry
// synchronously; the trimmed text is dispatched. Callers gate on the
// backend status before invoking Send, but a request that fails
// mid-flight is still surfaced as an error entry rather than lost.
func (o *ChatOrchestrator) Send(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.ErrEmptyQuery
	}

	// The user entry carries the raw text, not the trimmed dispatch text.
	o.log.Append(domain.EntryUser, query, nil)

	o.inflight.Add(1)
	defer o.inflight.Add(-1)

	answer, err := o.backend.Chat(ctx, trimmed)
	if err != nil {
		logger.Warn("chat failed: %v", err)
		o.log.Append(domain.EntryError, chatFailureMessage, nil)
		return err
	}

	o.log.Append(domain.EntryAssistant, answer.Answer, answer.Sources)
	return nil
}

// Loading reports whether at least one query is in flight. It is a
// derived value, never stored as a conversation entry.
func (o *ChatOrchestrator) Loading() bool {
	return o.inflight.Load() > 0
}
