package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
)

// mockBackend implements driven.BackendClient for testing.
type mockBackend struct {
	mu sync.Mutex

	healthReport *domain.HealthReport
	healthErr    error

	documents []domain.Document
	listErr   error
	listCalls atomic.Int64

	chatAnswer *domain.ChatAnswer
	chatErr    error
	// chatBlock, if non-nil, is closed by the test to release Chat.
	chatBlock chan struct{}

	uploadResult *driven.UploadResult
	uploadErr    error
	// uploadSteps are the (sent, total) pairs replayed through OnProgress.
	uploadSteps [][2]int64

	seedErr   error
	seedCalls atomic.Int64
}

var _ driven.BackendClient = (*mockBackend)(nil)

func (m *mockBackend) Health(_ context.Context) (*domain.HealthReport, error) {
	if m.healthErr != nil {
		return nil, m.healthErr
	}
	return m.healthReport, nil
}

func (m *mockBackend) ListDocuments(_ context.Context) ([]domain.Document, error) {
	m.listCalls.Add(1)
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]domain.Document, len(m.documents))
	copy(docs, m.documents)
	return docs, nil
}

func (m *mockBackend) UploadDocument(_ context.Context, req driven.UploadRequest) (*driven.UploadResult, error) {
	for _, step := range m.uploadSteps {
		if req.OnProgress != nil {
			req.OnProgress(step[0], step[1])
		}
	}
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.uploadResult, nil
}

func (m *mockBackend) Chat(_ context.Context, _ string) (*domain.ChatAnswer, error) {
	if m.chatBlock != nil {
		<-m.chatBlock
	}
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	return m.chatAnswer, nil
}

func (m *mockBackend) SeedDemoData(_ context.Context) error {
	m.seedCalls.Add(1)
	return m.seedErr
}
