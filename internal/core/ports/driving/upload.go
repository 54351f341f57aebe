package driving

import (
	"context"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// UploadService transfers local files to the backend for indexing.
type UploadService interface {
	// Upload starts a transfer for the file at path. It validates
	// preconditions synchronously and returns a finite event stream:
	// progress events followed by exactly one terminal event, after
	// which the channel is closed. Conversation entries and the
	// catalog refresh are handled internally.
	Upload(ctx context.Context, path string) (<-chan domain.TransferEvent, error)

	// Active returns a snapshot of the in-flight transfer, if any.
	Active() (domain.UploadTransfer, bool)

	// SetDefaultMetadata overrides the metadata applied to transfers.
	// Zero fields keep their built-in defaults.
	SetDefaultMetadata(meta domain.UploadMetadata)
}
