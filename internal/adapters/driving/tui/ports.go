// Package tui provides an interactive terminal user interface for OpenSquare.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat dispatches questions to the backend.
	Chat driving.ChatService

	// Conversation exposes the conversation transcript.
	Conversation driving.ConversationReader

	// Documents manages the catalog cache.
	Documents driving.DocumentService

	// Uploads transfers files to the backend.
	Uploads driving.UploadService

	// Health tracks backend connectivity.
	Health driving.HealthService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	conversation driving.ConversationReader,
	documents driving.DocumentService,
	uploads driving.UploadService,
	health driving.HealthService,
) *Ports {
	return &Ports{
		Chat:         chat,
		Conversation: conversation,
		Documents:    documents,
		Uploads:      uploads,
		Health:       health,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Conversation == nil {
		return ErrMissingConversation
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Uploads == nil {
		return ErrMissingUploadService
	}
	if p.Health == nil {
		return ErrMissingHealthService
	}
	return nil
}
