package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// Ensure DocumentRegistry implements the interface.
var _ driving.DocumentService = (*DocumentRegistry)(nil)

// DocumentRegistry caches the backend's document catalog. The cache is
// replaced wholesale on each successful fetch, preserving server
// order; a failed refresh leaves the previous cache untouched.
// Document listing is not safety-critical, so refresh failures degrade
// silently to a stale cache.
type DocumentRegistry struct {
	backend driven.BackendClient

	mu   sync.RWMutex
	docs []domain.Document
}

// NewDocumentRegistry creates a registry with an empty cache.
func NewDocumentRegistry(backend driven.BackendClient) *DocumentRegistry {
	return &DocumentRegistry{backend: backend}
}

// Refresh fetches the catalog and replaces the cache in full. On
// failure the previous cache is kept; callers that can only log should
// do so, nothing is appended to the conversation.
func (r *DocumentRegistry) Refresh(ctx context.Context) error {
	docs, err := r.backend.ListDocuments(ctx)
	if err != nil {
		logger.Warn("document refresh failed, keeping stale cache: %v", err)
		return fmt.Errorf("refresh documents: %w", err)
	}

	r.mu.Lock()
	r.docs = docs
	r.mu.Unlock()

	logger.Debug("document cache replaced: %d documents", len(docs))
	return nil
}

// Documents returns the cached snapshot synchronously, never blocking
// on the network.
func (r *DocumentRegistry) Documents() []domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]domain.Document, len(r.docs))
	copy(snapshot, r.docs)
	return snapshot
}

// Seed asks the backend to load its demo documents, then refreshes the
// cache so the new catalog is visible immediately.
func (r *DocumentRegistry) Seed(ctx context.Context) error {
	if err := r.backend.SeedDemoData(ctx); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return r.Refresh(ctx)
}
