// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversational question-and-answer view.
	ViewChat ViewType = iota
	// ViewDocuments lists the document catalog.
	ViewDocuments
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// HealthChecked carries the result of a backend health probe.
type HealthChecked struct {
	Status domain.BackendStatus
	Report *domain.HealthReport
}

// ChatCompleted signals a question finished processing. The transcript
// already contains the outcome; Err covers precondition failures only.
type ChatCompleted struct {
	Err error
}

// DocumentsRefreshed signals a catalog refresh completed.
type DocumentsRefreshed struct {
	Count int
	Err   error
}

// UploadStarted carries the event stream of a transfer that just began.
type UploadStarted struct {
	Events <-chan domain.TransferEvent
}

// UploadProgressed carries one transfer event plus the stream to keep
// pumping from.
type UploadProgressed struct {
	Event  domain.TransferEvent
	Events <-chan domain.TransferEvent
}

// UploadFinished signals the transfer event stream closed.
type UploadFinished struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
