package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

func testDocuments() []domain.Document {
	return []domain.Document{
		{ID: "doc-1", Title: "Ministry of Health Budget 2024", Organization: "Ministry of Health", DocType: "Budget Document", Year: 2024, UploadedAt: time.Now()},
		{ID: "doc-2", Title: "Education Ministry Financial Report Q3 2024", Organization: "Ministry of Education", DocType: "Financial Report", Year: 2024, UploadedAt: time.Now()},
	}
}

func TestDocumentRegistry_StartsEmpty(t *testing.T) {
	registry := NewDocumentRegistry(&mockBackend{})
	assert.Empty(t, registry.Documents())
}

func TestDocumentRegistry_Refresh_ReplacesCache(t *testing.T) {
	backend := &mockBackend{documents: testDocuments()}
	registry := NewDocumentRegistry(backend)

	require.NoError(t, registry.Refresh(context.Background()))

	docs := registry.Documents()
	require.Len(t, docs, 2)
	// Server order is preserved.
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "doc-2", docs[1].ID)
}

func TestDocumentRegistry_Refresh_Idempotent(t *testing.T) {
	backend := &mockBackend{documents: testDocuments()}
	registry := NewDocumentRegistry(backend)

	require.NoError(t, registry.Refresh(context.Background()))
	first := registry.Documents()
	require.NoError(t, registry.Refresh(context.Background()))
	second := registry.Documents()

	assert.Equal(t, first, second)
}

func TestDocumentRegistry_Refresh_FailureKeepsCache(t *testing.T) {
	backend := &mockBackend{documents: testDocuments()}
	registry := NewDocumentRegistry(backend)
	require.NoError(t, registry.Refresh(context.Background()))

	backend.listErr = errors.New("connection refused")
	err := registry.Refresh(context.Background())

	require.Error(t, err)
	assert.Len(t, registry.Documents(), 2, "stale cache must survive a failed refresh")
}

func TestDocumentRegistry_Refresh_FailureFromEmptyStaysEmpty(t *testing.T) {
	backend := &mockBackend{listErr: errors.New("connection refused")}
	registry := NewDocumentRegistry(backend)

	require.Error(t, registry.Refresh(context.Background()))
	assert.Empty(t, registry.Documents())
}

func TestDocumentRegistry_SnapshotIsolation(t *testing.T) {
	backend := &mockBackend{documents: testDocuments()}
	registry := NewDocumentRegistry(backend)
	require.NoError(t, registry.Refresh(context.Background()))

	snapshot := registry.Documents()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "Ministry of Health Budget 2024", registry.Documents()[0].Title)
}

func TestDocumentRegistry_Seed_RefreshesOnSuccess(t *testing.T) {
	backend := &mockBackend{documents: testDocuments()}
	registry := NewDocumentRegistry(backend)

	require.NoError(t, registry.Seed(context.Background()))

	assert.Equal(t, int64(1), backend.seedCalls.Load())
	assert.Equal(t, int64(1), backend.listCalls.Load())
	assert.Len(t, registry.Documents(), 2)
}

func TestDocumentRegistry_Seed_FailureSkipsRefresh(t *testing.T) {
	backend := &mockBackend{seedErr: errors.New("boom")}
	registry := NewDocumentRegistry(backend)

	require.Error(t, registry.Seed(context.Background()))
	assert.Equal(t, int64(0), backend.listCalls.Load())
}
