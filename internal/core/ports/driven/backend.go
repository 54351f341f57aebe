package driven

import (
	"context"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// ProgressFunc receives byte-level progress while an upload streams.
// sent and total are byte counts; total is the full file size.
type ProgressFunc func(sent, total int64)

// UploadRequest describes one file transfer to the backend.
type UploadRequest struct {
	// Path is the local file to send.
	Path string

	// Metadata is the organization/type/year triple attached to the file.
	Metadata domain.UploadMetadata

	// OnProgress, if non-nil, is called as bytes are written to the wire.
	OnProgress ProgressFunc
}

// UploadResult is the backend's acknowledgement of an accepted upload.
type UploadResult struct {
	// Filename is the name the backend stored the document under.
	Filename string

	// Size is the human-readable size string reported by the backend.
	Size string

	// DocumentID is the backend-assigned identifier.
	DocumentID string
}

// BackendClient is the single remote dependency of the core. Every
// method issues one request and returns one response; there is no
// streaming or multi-step handshake. Failures are returned as errors,
// with server-supplied messages preserved where available.
type BackendClient interface {
	// Health probes backend availability.
	Health(ctx context.Context) (*domain.HealthReport, error)

	// ListDocuments fetches the full document catalog in server order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UploadDocument sends one file as a multipart transfer.
	UploadDocument(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// Chat submits a query and returns the answer with citations.
	Chat(ctx context.Context, query string) (*domain.ChatAnswer, error)

	// SeedDemoData asks the backend to load its sample documents.
	SeedDemoData(ctx context.Context) error
}
