package tui

import (
	"context"
	"time"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

type mockChat struct {
	sent []string
	err  error
}

func (m *mockChat) Send(_ context.Context, query string) error {
	m.sent = append(m.sent, query)
	return m.err
}

func (m *mockChat) Loading() bool { return false }

type mockConversation struct {
	entries []domain.ConversationEntry
}

func (m *mockConversation) Entries() []domain.ConversationEntry {
	return append([]domain.ConversationEntry(nil), m.entries...)
}

func (m *mockConversation) Len() int { return len(m.entries) }

type mockDocuments struct {
	docs       []domain.Document
	refreshErr error
	refreshed  int
}

func (m *mockDocuments) Refresh(_ context.Context) error {
	m.refreshed++
	return m.refreshErr
}

func (m *mockDocuments) Documents() []domain.Document {
	return append([]domain.Document(nil), m.docs...)
}

func (m *mockDocuments) Seed(_ context.Context) error { return nil }

type mockUploads struct {
	events []domain.TransferEvent
	err    error
}

func (m *mockUploads) Upload(_ context.Context, _ string) (<-chan domain.TransferEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan domain.TransferEvent, len(m.events)+1)
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (m *mockUploads) Active() (domain.UploadTransfer, bool) {
	return domain.UploadTransfer{}, false
}

func (m *mockUploads) SetDefaultMetadata(_ domain.UploadMetadata) {}

type mockHealth struct {
	status domain.BackendStatus
	report *domain.HealthReport
	probes int
}

func (m *mockHealth) Probe(_ context.Context) domain.BackendStatus {
	m.probes++
	return m.status
}

func (m *mockHealth) Status() domain.BackendStatus             { return m.status }
func (m *mockHealth) Report() *domain.HealthReport             { return m.report }
func (m *mockHealth) Watch(_ context.Context, _ time.Duration) {}

// validPorts returns a Ports aggregate backed by mocks.
func validPorts() (*Ports, *mockChat, *mockDocuments, *mockHealth) {
	chat := &mockChat{}
	docs := &mockDocuments{}
	health := &mockHealth{status: domain.StatusOnline}
	ports := NewPorts(chat, &mockConversation{}, docs, &mockUploads{}, health)
	return ports, chat, docs, health
}
