package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// Ensure UploadManager implements the interface.
var _ driving.UploadService = (*UploadManager)(nil)

// Default metadata applied when the caller supplies none, matching the
// backend's own fallbacks.
const (
	DefaultOrganization = "Unknown"
	DefaultDocType      = "General"
)

// UploadManager packages a single file into a transfer, tracks
// byte-level progress and records the outcome in the conversation log.
// Transfers are serialized: at most one is in flight, and a terminal
// transfer is disposed of rather than retried.
type UploadManager struct {
	backend  driven.BackendClient
	log      *ConversationLog
	registry driving.DocumentService
	defaults domain.UploadMetadata

	mu     sync.Mutex
	active *domain.UploadTransfer
}

// NewUploadManager creates an upload manager appending to log and
// refreshing registry after successful uploads.
func NewUploadManager(backend driven.BackendClient, log *ConversationLog, registry driving.DocumentService) *UploadManager {
	return &UploadManager{
		backend:  backend,
		log:      log,
		registry: registry,
	}
}

// SetDefaultMetadata overrides the placeholder metadata applied to
// transfers. Zero fields keep their built-in defaults.
func (m *UploadManager) SetDefaultMetadata(meta domain.UploadMetadata) {
	m.defaults = meta
}

// Upload starts a transfer for the file at path. Precondition failures
// (missing file, transfer already active) are returned synchronously;
// otherwise the transfer runs in its own task and the returned channel
// carries progress events followed by one terminal event, then closes.
func (m *UploadManager) Upload(ctx context.Context, path string) (<-chan domain.TransferEvent, error) {
	if path == "" {
		return nil, domain.ErrNoFile
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoFile, path)
	}

	transfer := &domain.UploadTransfer{
		ID:       uuid.NewString(),
		Path:     path,
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Metadata: m.metadata(),
		Status:   domain.TransferPending,
	}

	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return nil, domain.ErrUploadInProgress
	}
	m.active = transfer
	m.mu.Unlock()

	// Monotonic percentages cap the stream at 100 progress events plus
	// one terminal event, so this buffer can never fill.
	events := make(chan domain.TransferEvent, 128)
	go m.run(ctx, transfer, events)
	return events, nil
}

// Active returns a snapshot of the in-flight transfer, if any.
func (m *UploadManager) Active() (domain.UploadTransfer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return domain.UploadTransfer{}, false
	}
	return *m.active, true
}

// run drives one transfer to a terminal state and disposes of it.
func (m *UploadManager) run(ctx context.Context, transfer *domain.UploadTransfer, events chan<- domain.TransferEvent) {
	defer close(events)
	defer m.dispose()

	m.setStatus(transfer, domain.TransferInProgress)
	logger.Info("uploading %s (%s)", transfer.Filename, domain.FormatFileSize(transfer.Size))

	req := driven.UploadRequest{
		Path:     transfer.Path,
		Metadata: transfer.Metadata,
		OnProgress: func(sent, total int64) {
			if percent, ok := m.advance(transfer, sent, total); ok {
				emit(events, domain.TransferEvent{Percent: percent, Status: domain.TransferInProgress})
			}
		},
	}

	result, err := m.backend.UploadDocument(ctx, req)
	if err != nil {
		m.setStatus(transfer, domain.TransferFailed)
		message := failureMessage(err)
		m.log.Append(domain.EntryError, fmt.Sprintf("Upload failed: %s", message), nil)
		emit(events, domain.TransferEvent{Status: domain.TransferFailed, Message: message})
		return
	}

	m.setStatus(transfer, domain.TransferSucceeded)
	notice := fmt.Sprintf("Uploaded %s (%s). The document is being indexed and will be searchable shortly.",
		result.Filename, domain.FormatFileSize(transfer.Size))
	m.log.Append(domain.EntrySuccess, notice, nil)

	// Catalog refresh failures degrade silently to a stale cache.
	refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := m.registry.Refresh(refreshCtx); err != nil {
		logger.Warn("post-upload refresh failed: %v", err)
	}

	emit(events, domain.TransferEvent{Percent: 100, Status: domain.TransferSucceeded})
}

// advance updates transfer progress, enforcing monotonicity. It
// returns the new percentage and whether it increased.
func (m *UploadManager) advance(transfer *domain.UploadTransfer, sent, total int64) (int, bool) {
	if total <= 0 {
		return 0, false
	}
	percent := int(math.Round(float64(sent) / float64(total) * 100))
	if percent > 100 {
		percent = 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if percent <= transfer.ProgressPercent {
		return transfer.ProgressPercent, false
	}
	transfer.ProgressPercent = percent
	return percent, true
}

// dispose resets progress and discards the transfer. Retries are new
// transfers.
func (m *UploadManager) dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.ProgressPercent = 0
		m.active = nil
	}
}

func (m *UploadManager) setStatus(transfer *domain.UploadTransfer, status domain.TransferStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	transfer.Status = status
}

// metadata fills unset default fields with the built-in placeholders.
func (m *UploadManager) metadata() domain.UploadMetadata {
	meta := m.defaults
	if meta.Organization == "" {
		meta.Organization = DefaultOrganization
	}
	if meta.DocType == "" {
		meta.DocType = DefaultDocType
	}
	if meta.Year == 0 {
		meta.Year = time.Now().Year()
	}
	return meta
}

// failureMessage prefers the server-supplied message over the generic
// transport error.
func failureMessage(err error) string {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return err.Error()
}

// emit sends an event without ever blocking the transfer on a slow
// consumer. The buffer is sized above the maximum stream length, so
// drops cannot occur in practice.
func emit(events chan<- domain.TransferEvent, ev domain.TransferEvent) {
	select {
	case events <- ev:
	default:
	}
}
