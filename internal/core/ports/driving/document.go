package driving

import (
	"context"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// DocumentService maintains the cached view of the backend catalog.
type DocumentService interface {
	// Refresh replaces the cached document list with a fresh fetch.
	// On failure the previous cache is kept and the error returned.
	Refresh(ctx context.Context) error

	// Documents returns the cached snapshot without blocking.
	Documents() []domain.Document

	// Seed asks the backend to load its demo documents, then refreshes.
	Seed(ctx context.Context) error
}
